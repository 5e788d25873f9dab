package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ballot is the audit record of one user's cast vote. Append only.
// The unique index on UserID is a schema-level guarantee that no user can
// ever hold two ballots, independent of the application-level voted flag.
type Ballot struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CandidateID uuid.UUID `json:"candidate_id" gorm:"type:char(36);not null;index"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Candidate Candidate `json:"-" gorm:"foreignKey:CandidateID"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Ballot) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
