package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurposeAuth is the only purpose this system mints tokens for.
// Purposes form a closed set; a token minted for one purpose must never be
// accepted for another.
const TokenPurposeAuth = "authentication"

// SessionToken is one entry in a user's token ledger, representing a single
// live session (one device). The token string is the full signed value handed
// to the client; revocation removes the row, which kills the session even
// though the signature itself keeps verifying.
type SessionToken struct {
	ID        uuid.UUID // The unique ID for this ledger entry.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	Purpose   string    // Always TokenPurposeAuth in this system.
	Token     string    // The literal signed token string presented by the client.
	CreatedAt time.Time // Timestamp of when this session was opened (i.e., login time).
}
