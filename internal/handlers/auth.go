package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler exchanges the configured access passphrase for a bearer
// token. The journal is single-user; there is no account table.
type AuthHandler struct {
	passphraseHash []byte
	jwtSecret      []byte
}

func NewAuthHandler(passphraseHash, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{passphraseHash: passphraseHash, jwtSecret: jwtSecret}
}

type loginRequest struct {
	Passphrase string `json:"passphrase"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Passphrase == "" {
		http.Error(w, "passphrase required", http.StatusBadRequest)
		return
	}

	if bcrypt.CompareHashAndPassword(h.passphraseHash, []byte(req.Passphrase)) != nil {
		http.Error(w, "invalid passphrase", http.StatusUnauthorized)
		return
	}

	token, err := h.issueJWT()
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"token": token})
}

func (h *AuthHandler) issueJWT() (string, error) {
	claims := jwt.MapClaims{
		"sub": "daybook",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
