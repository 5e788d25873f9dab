package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Candidate represents an electoral candidate on the ballot.
// VoteCount and Ballots are owned by the vote ledger: admin writes never
// touch them, and VoteCount always equals the number of Ballot rows.
type Candidate struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Party     string         `json:"party" gorm:"size:255;not null;index"`
	Age       int            `json:"age" gorm:"not null"`
	VoteCount uint64         `json:"voteCount" gorm:"not null;default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Ballots []Ballot `json:"-" gorm:"foreignKey:CandidateID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
