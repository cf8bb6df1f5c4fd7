package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcdev12/bpl/go/internal/httpx"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie set on login
const CookieName = "bpl_session"

// Credentials is the single account allowed to log in
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Handler serves login and logout
type Handler struct {
	creds        Credentials
	sessions     *Sessions
	secureCookie bool
}

func NewHandler(creds Credentials, sessions *Sessions, secureCookie bool) *Handler {
	return &Handler{creds: creds, sessions: sessions, secureCookie: secureCookie}
}

// Register mounts the auth routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
}

// Login checks the posted credentials and sets the session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest, "invalid login request")
		return
	}

	if !h.valid(req.Username, req.Password) {
		log.Warn().Str("username", req.Username).Msg("failed login")
		httpx.WriteStatus(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, expires, err := h.sessions.Issue(req.Username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().Str("username", req.Username).Msg("logged in")
	httpx.WriteJSON(w, http.StatusOK, LoginResult{
		Username:  req.Username,
		Token:     token,
		ExpiresAt: expires,
	})
}

// Logout clears the session cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, nil)
}

func (h *Handler) valid(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.creds.Username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword([]byte(h.creds.PasswordHash), []byte(password))
	return userOK && passErr == nil
}
