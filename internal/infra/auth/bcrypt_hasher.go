// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"taskpad/config"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt generates a fresh salt per call, so equal plaintexts never share a digest.
// An empty plaintext is a programmer error; upstream validation should catch it first.
// bcrypt only accepts 72 bytes of input, so an overlong plaintext is a
// validation failure rather than an internal error.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrInvalidInput.WrapMessage("cannot hash an empty password")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainerrors.ErrValidationFailed.WrapMessage("password exceeds the maximum length")
		}

		return "", err
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt digest.
// bcrypt's comparison is constant-time; any failure, including a malformed
// digest, is reported as a plain mismatch so nothing leaks past this boundary.
func (h *bcryptHasher) Check(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))

	return err == nil
}
