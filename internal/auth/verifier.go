package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/maxapp/site-backend/internal/utils"
	"gorm.io/gorm"
)

// storeTimeout bounds every session-store call so the gate decision can
// never hang on a slow database.
const storeTimeout = 5 * time.Second

// Verifier checks whether a request carries a valid session. Verification
// may rotate the session cookie as a side effect; the rotated cookie is
// written to w immediately so it survives any redirect issued afterwards.
type Verifier struct {
	Store   SessionStore
	Cookies CookieConfig

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewVerifier(store SessionStore, cookies CookieConfig) *Verifier {
	return &Verifier{Store: store, Cookies: cookies, Now: time.Now}
}

// Verify implements the session check. Store errors are logged and treated
// as "no session" (fail closed), never surfaced to the client.
func (v *Verifier) Verify(w http.ResponseWriter, r *http.Request) (utils.Principal, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return utils.Principal{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	session, err := v.Store.FindSessionByID(ctx, cookie.Value)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[auth] session lookup error: %v", err)
		}
		return utils.Principal{}, false
	}

	now := v.now()
	if session.ExpiresAt.Before(now) {
		return utils.Principal{}, false
	}

	// Sliding refresh: past half the lifetime, rotate the ID and extend.
	if session.ExpiresAt.Sub(now) < SessionTTL/2 {
		newID := uuid.New().String()
		newExpiry := now.Add(SessionTTL)
		if err := v.Store.RotateSession(ctx, session.SessionID, newID, newExpiry); err != nil {
			log.Printf("[auth] session rotation error: %v", err)
		} else {
			http.SetCookie(w, v.Cookies.Session(newID))
		}
	}

	return utils.Principal{UserID: session.UserID, Email: session.Email}, true
}

func (v *Verifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}
