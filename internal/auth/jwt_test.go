package auth

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("telegram-bot")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.GatewayID != "telegram-bot" {
		t.Errorf("gateway_id = %q, want telegram-bot", claims.GatewayID)
	}
	if claims.Issuer != "devops-simulator-api" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
	if claims.Subject != "telegram-bot" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("telegram-bot")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
