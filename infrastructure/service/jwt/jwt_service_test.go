package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/terrapoint/terrapoint/application/port/outbound"
)

func TestGenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTService failed: %v", err)
	}

	token, err := svc.GenerateAccessToken(outbound.TokenClaims{
		UserID:   "u-1",
		Username: "jane",
		Name:     "Jane",
		Role:     "employee",
	})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "jane" || claims.Role != "employee" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	svc, _ := NewJWTService("test-secret", time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, _ := NewJWTService("different-secret", time.Hour)
		token, err := other.GenerateAccessToken(outbound.TokenClaims{UserID: "u-1"})
		if err != nil {
			t.Fatalf("GenerateAccessToken failed: %v", err)
		}
		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		expired, _ := NewJWTService("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken(outbound.TokenClaims{UserID: "u-1"})
		if err != nil {
			t.Fatalf("GenerateAccessToken failed: %v", err)
		}
		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestRequiresSecret(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); err == nil {
		t.Fatal("expected an error for an empty secret")
	}
}
