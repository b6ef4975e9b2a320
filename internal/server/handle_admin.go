package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const adminCookieName = "admin_session"

// Admin is the configured administrator credential plus its live
// sessions. The credential comes from configuration (with fixed
// fallback defaults), not from the database; the password is hashed at
// startup so the plaintext is not held in memory afterwards.
type Admin struct {
	user string
	hash []byte

	mu       sync.Mutex
	sessions map[string]time.Time
}

const adminSessionTTL = 7 * 24 * time.Hour

func NewAdmin(user, password string) (*Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return &Admin{
		user:     user,
		hash:     hash,
		sessions: make(map[string]time.Time),
	}, nil
}

func (a *Admin) login(user, password string) (string, bool) {
	if user != a.user {
		return "", false
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return "", false
	}

	id := uuid.NewString()
	a.mu.Lock()
	a.sessions[id] = time.Now().Add(adminSessionTTL)
	a.mu.Unlock()
	return id, true
}

func (a *Admin) validSession(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	expires, ok := a.sessions[id]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(a.sessions, id)
		return false
	}
	return true
}

func (a *Admin) logout(id string) {
	a.mu.Lock()
	delete(a.sessions, id)
	a.mu.Unlock()
}

// AdminLoginRequest is the request body for POST /api/admin/login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminMeResponse is the response for GET /api/admin/me.
type AdminMeResponse struct {
	Username string `json:"username"`
}

func handleAdminLogin(admin *Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		sessionID, ok := admin.login(req.Username, req.Password)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(adminSessionTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, AdminMeResponse{Username: req.Username})
	}
}

func handleAdminLogout(admin *Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(adminCookieName); err == nil {
			admin.logout(cookie.Value)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		writeOK(w)
	}
}

func handleAdminMe(admin *Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil || !admin.validSession(cookie.Value) {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, AdminMeResponse{Username: admin.user})
	}
}
