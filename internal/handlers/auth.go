package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/ynckz/devops-simulator/internal/auth"
)

// AuthHandler issues gateway tokens. The bot gateway proves itself with a
// shared secret; only a bcrypt hash of that secret lives in the environment.
type AuthHandler struct {
	gatewayID  string
	secretHash string
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		gatewayID:  getEnvOrDefault("GATEWAY_ID", "telegram-bot"),
		secretHash: os.Getenv("GATEWAY_SECRET_HASH"),
	}
}

// TokenRequest represents the token request body
type TokenRequest struct {
	GatewayID string `json:"gateway_id"`
	Secret    string `json:"secret"`
}

// TokenResponse represents the token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Token exchanges the gateway shared secret for a JWT
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if h.secretHash == "" {
		log.Println("[Auth] GATEWAY_SECRET_HASH is not configured")
		writeError(w, http.StatusServiceUnavailable, "Gateway authentication is not configured")
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.GatewayID != h.gatewayID ||
		bcrypt.CompareHashAndPassword([]byte(h.secretHash), []byte(req.Secret)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid gateway credentials")
		return
	}

	token, err := auth.GenerateToken(req.GatewayID)
	if err != nil {
		log.Printf("[Auth] Failed to generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
