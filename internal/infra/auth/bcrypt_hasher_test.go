package auth

import (
	"strings"
	"testing"

	"taskpad/config"
	domainerrors "taskpad/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			// MinCost keeps the test suite fast; production cost comes from config.
			BcryptCost: 4,
		},
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	password := "secretpw1"
	digest, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, password, digest)

	assert.True(t, hasher.Check(password, digest))
	assert.False(t, hasher.Check("wrongpw", digest))
}

func TestBcryptHasher_DigestsAreSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("secretpw1")
	assert.NoError(t, err)
	second, err := hasher.Hash("secretpw1")
	assert.NoError(t, err)

	// Per-call salting: same plaintext, different digests, both verifiable.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secretpw1", first))
	assert.True(t, hasher.Check("secretpw1", second))
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	hasher := newTestHasher()

	digest, err := hasher.Hash("")
	assert.Error(t, err)
	assert.Empty(t, digest)
}

func TestBcryptHasher_OverlongPassword(t *testing.T) {
	hasher := newTestHasher()

	// bcrypt caps input at 72 bytes; anything longer must surface as a
	// validation failure, not an internal error.
	digest, err := hasher.Hash(strings.Repeat("x", 80))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, digest)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	hasher := newTestHasher()

	// A malformed digest is a mismatch, not a panic or an escaping error.
	assert.False(t, hasher.Check("secretpw1", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Check("secretpw1", ""))
}
