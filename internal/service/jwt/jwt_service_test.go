package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/slatrack/slatrack/internal/ports"
)

func TestJWTService(t *testing.T) {
	service, err := NewJWTService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}

	t.Run("GenerateAccessToken", func(t *testing.T) {
		token, err := service.GenerateAccessToken(ports.TokenClaims{UserID: "user123", Role: "ADMIN"})
		if err != nil {
			t.Errorf("Failed to generate access token: %v", err)
		}
		if token == "" {
			t.Error("Access token should not be empty")
		}
	})

	t.Run("ValidateAccessToken", func(t *testing.T) {
		tokenString, err := service.GenerateAccessToken(ports.TokenClaims{UserID: "user123", Role: "ADMIN"})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		claims, err := service.ValidateAccessToken(tokenString)
		if err != nil {
			t.Errorf("Failed to validate token: %v", err)
		}
		if claims != nil && claims.UserID != "user123" {
			t.Errorf("Expected user ID 'user123', got '%s'", claims.UserID)
		}
		if claims != nil && claims.Role != "ADMIN" {
			t.Errorf("Expected role 'ADMIN', got '%s'", claims.Role)
		}
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid-token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateTokenFromOtherSecret", func(t *testing.T) {
		other, err := NewJWTService("other-secret", time.Hour)
		if err != nil {
			t.Fatalf("Failed to create JWT service: %v", err)
		}
		token, err := other.GenerateAccessToken(ports.TokenClaims{UserID: "user123"})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		if _, err := service.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for foreign signature, got %v", err)
		}
	})

	t.Run("ValidateExpiredToken", func(t *testing.T) {
		shortService, err := NewJWTService("test-secret", time.Second)
		if err != nil {
			t.Fatalf("Failed to create JWT service: %v", err)
		}

		token, err := shortService.GenerateAccessToken(ports.TokenClaims{UserID: "user123"})
		if err != nil {
			t.Fatalf("Failed to generate access token: %v", err)
		}

		// Wait for token to expire
		time.Sleep(2 * time.Second)

		if _, err := shortService.ValidateAccessToken(token); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("EmptySecret", func(t *testing.T) {
		if _, err := NewJWTService("", time.Hour); err == nil {
			t.Error("Should fail to create service without a secret")
		}
	})
}
