package repository

import (
	"context"

	"taskpad/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionTokenRepository defines the operations on a user's token ledger.
// Entries are individual rows keyed by user, so appends from concurrent
// logins never overwrite each other.
type SessionTokenRepository interface {
	// Append adds a new entry to the owning user's ledger.
	Append(ctx context.Context, token *entity.SessionToken) error

	// Remove deletes the ledger entry matching the exact token string for the
	// given user. Removing an absent entry is a no-op, not an error.
	Remove(ctx context.Context, userID uuid.UUID, token string) error

	// RemoveAllForUser clears the user's entire ledger, ending every session.
	RemoveAllForUser(ctx context.Context, userID uuid.UUID) error
}
