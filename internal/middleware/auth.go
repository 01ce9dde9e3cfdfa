package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ynckz/devops-simulator/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// GatewayContextKey is the key for storing gateway claims in request context
	GatewayContextKey contextKey = "gateway"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequireAuth is a middleware that validates gateway JWT tokens
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing authorization header"})
			return
		}

		// Check if header has Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid authorization header format. Use: Bearer <token>"})
			return
		}

		tokenString := parts[1]

		// Validate token
		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid or expired token"})
			return
		}

		// Add claims to request context
		ctx := context.WithValue(r.Context(), GatewayContextKey, claims)
		r = r.WithContext(ctx)

		// Call next handler
		next.ServeHTTP(w, r)
	}
}

// GetGatewayClaims extracts gateway claims from request context
func GetGatewayClaims(r *http.Request) (*auth.GatewayClaims, bool) {
	claims, ok := r.Context().Value(GatewayContextKey).(*auth.GatewayClaims)
	return claims, ok
}
