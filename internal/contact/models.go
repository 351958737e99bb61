package contact

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusNew      = "new"
	StatusReplied  = "replied"
	StatusArchived = "archived"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// Submission is one contact form entry. Invariant: Status == replied implies
// ReplyMessage and RepliedAt are both set; the reply handler is the only
// code path that writes any of the three.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	FirstName    string     `gorm:"not null" json:"first_name"`
	LastName     string     `gorm:"not null" json:"last_name"`
	Email        string     `gorm:"not null;index" json:"email"`
	Phone        string     `gorm:"not null" json:"phone"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	Status       string     `gorm:"default:'new';index" json:"status"`
	ReplyMessage *string    `json:"reply_message,omitempty"`
	RepliedAt    *time.Time `json:"replied_at,omitempty"`
}

func (Submission) TableName() string { return "contact_submissions" }

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = StatusNew
	}
	return nil
}
