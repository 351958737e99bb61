package auth

import (
	"context"
	"time"

	"github.com/maxapp/site-backend/internal/db"
)

// SessionStore abstracts session persistence so the verifier can be tested
// without a database.
type SessionStore interface {
	FindSessionByID(ctx context.Context, id string) (SessionData, error)
	RotateSession(ctx context.Context, oldID, newID string, expiresAt time.Time) error
}

// GormStore is the Postgres-backed SessionStore used in production.
type GormStore struct{}

func (GormStore) FindSessionByID(ctx context.Context, id string) (SessionData, error) {
	var session Session
	if err := db.DB.WithContext(ctx).First(&session, "session_id = ?", id).Error; err != nil {
		return SessionData{}, err
	}

	var user User
	if err := db.DB.WithContext(ctx).First(&user, "user_id = ?", session.UserID).Error; err != nil {
		return SessionData{}, err
	}

	return SessionData{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (GormStore) RotateSession(ctx context.Context, oldID, newID string, expiresAt time.Time) error {
	return db.DB.WithContext(ctx).Model(&Session{}).
		Where("session_id = ?", oldID).
		Updates(map[string]interface{}{
			"session_id": newID,
			"expires_at": expiresAt,
		}).Error
}
