package model

import "time"

// User represents a registered voter or administrator.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Age          int       `json:"age" gorm:"not null"`
	Email        string    `json:"email,omitempty" gorm:"size:255"`
	Mobile       string    `json:"mobile,omitempty" gorm:"size:20"`
	Address      string    `json:"address" gorm:"size:512;not null"`
	AadharNumber string    `json:"aadharCardNumber" gorm:"column:aadhar_number;type:char(12);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:'voter';index"`
	IsVoted      bool      `json:"isVoted" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
