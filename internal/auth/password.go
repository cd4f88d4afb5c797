package auth

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "contactbook/internal/errors"
)

// MinPasswordLength is the shortest password accepted for new accounts.
const MinPasswordLength = 8

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var dummyPasswordHash = sync.OnceValue(func() string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	return string(hash)
})

// DummyPasswordHash returns a hash of a random secret at the cost of real hashes.
// Verifying against it for unknown usernames keeps login latency uniform.
func DummyPasswordHash() string {
	return dummyPasswordHash()
}

// ValidatePasswordStrength requires MinPasswordLength characters with an upper-case
// letter, a lower-case letter and a digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return fmt.Errorf("%w: password needs an upper-case letter, a lower-case letter and a digit", apperrors.ErrValidation)
	}
	return nil
}
