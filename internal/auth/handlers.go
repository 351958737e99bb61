package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/maxapp/site-backend/internal/db"
	"github.com/maxapp/site-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Handlers serves the admin auth endpoints.
type Handlers struct {
	Cookies CookieConfig
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	var user User
	if err := db.DB.First(&user, "email = ?", creds.Email).Error; err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(creds.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(SessionTTL)

	// One session per user: replace an existing row, otherwise create.
	var existing Session
	err := db.DB.Where("user_id = ?", user.UserID).First(&existing).Error
	if err == nil {
		err = db.DB.Model(&existing).Updates(Session{
			SessionID: sessionID,
			ExpiresAt: expiresAt,
		}).Error
	} else {
		err = db.DB.Create(&Session{
			SessionID: sessionID,
			UserID:    user.UserID,
			ExpiresAt: expiresAt,
		}).Error
	}
	if err != nil {
		log.Printf("[auth] failed to persist session: %v", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.Cookies.Session(sessionID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"user_id": user.UserID,
		"email":   user.Email,
	})
}

func (h Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		http.Error(w, "Not logged in", http.StatusUnauthorized)
		return
	}

	if err := db.DB.Where("session_id = ?", cookie.Value).Delete(&Session{}).Error; err != nil {
		log.Printf("[auth] failed to delete session: %v", err)
	}

	http.SetCookie(w, h.Cookies.Expired())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logout successful"})
}

func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"user_id": principal.UserID,
		"email":   principal.Email,
	})
}
