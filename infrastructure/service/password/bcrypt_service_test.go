package password

import (
	"errors"
	"testing"

	"github.com/terrapoint/terrapoint/domain"
)

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(bcryptTestCost)

	t.Run("HashPassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Errorf("Failed to hash password: %v", err)
		}
		if hash == "" {
			t.Error("Hash should not be empty")
		}
	})

	t.Run("HashEmptyPassword", func(t *testing.T) {
		_, err := service.HashPassword("")
		if err == nil {
			t.Error("Should fail to hash empty password")
		}
	})

	t.Run("ComparePassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}

		if err := service.ComparePassword(hash, "test-password-123"); err != nil {
			t.Errorf("Password should match: %v", err)
		}
	})

	t.Run("CompareWrongPassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}

		err = service.ComparePassword(hash, "wrong-password-456")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Wrong password should return ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("CompareEmptyPassword", func(t *testing.T) {
		err := service.ComparePassword("$2a$10$somehash", "")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Empty password should return ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("CompareEmptyHash", func(t *testing.T) {
		err := service.ComparePassword("", "password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Empty hash should return ErrInvalidCredentials, got %v", err)
		}
	})
}

// Low cost keeps the test fast; production uses bcrypt.DefaultCost.
const bcryptTestCost = 4
