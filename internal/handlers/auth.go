package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"neurowatch/internal/accounts"
)

type AuthHandler struct {
	directory *accounts.Directory
	jwtSecret []byte
}

func NewAuthHandler(directory *accounts.Directory, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{directory: directory, jwtSecret: jwtSecret}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type credentials struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password required", http.StatusBadRequest)
		return
	}

	identity, err := h.directory.Register(r.Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, accounts.ErrAlreadyExists) {
			http.Error(w, "username or email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "could not create account", http.StatusBadGateway)
		return
	}

	token, err := h.issueJWT(identity.ID)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"token": token, "user": identity})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if c.UsernameOrEmail == "" || c.Password == "" {
		http.Error(w, "credentials required", http.StatusBadRequest)
		return
	}

	identity, err := h.directory.Authenticate(r.Context(), c.UsernameOrEmail, c.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not reach account store", http.StatusBadGateway)
		return
	}

	token, err := h.issueJWT(identity.ID)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"token": token, "user": identity})
}

// ForgotPassword acknowledges a reset request. No mail goes out yet; the
// response is deliberately the same whether or not the email is registered,
// so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Email) == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{
		"message": "If an account exists for that email, reset instructions have been sent.",
	})
}

func (h *AuthHandler) issueJWT(identityID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": identityID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
