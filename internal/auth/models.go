package auth

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string `gorm:"primaryKey" json:"user_id"`
	Email          string `gorm:"not null;unique" json:"email"`
	HashedPassword string `json:"-"`
	Role           string `gorm:"default:'admin'" json:"role"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (User) TableName() string    { return "app_auth.users" }

// SessionData is what the verifier needs from a stored session plus its user.
type SessionData struct {
	SessionID string
	UserID    string
	Email     string
	ExpiresAt time.Time
}
