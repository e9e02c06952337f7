// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskpad/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// The minimum password length is config-driven and enforced by the service
// before any digest is computed. The maximum is bcrypt's 72-byte input limit.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AccountView is the public projection of a user: identity only,
// never the password digest and never the token ledger.
type AccountView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// NewAccountView builds the public projection for a user entity.
func NewAccountView(user *entity.User) *AccountView {
	return &AccountView{
		ID:    user.ID,
		Email: user.Email,
	}
}

// AccountUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account and returns its public projection.
	Register(ctx context.Context, input *RegisterInput) (*AccountView, error)

	// Authenticate verifies credentials and returns the full user record.
	// It does not mint a token; callers that want a session call IssueToken.
	// Unknown email and wrong password fail identically.
	Authenticate(ctx context.Context, input *LoginInput) (*entity.User, error)

	// IssueToken mints a signed session token for the user and appends it to
	// their ledger. Safe under concurrent logins for the same user.
	IssueToken(ctx context.Context, user *entity.User) (string, error)

	// ResolveToken maps a presented token back to its live user. It fails for
	// forged or malformed tokens, and separately for tokens whose ledger
	// entry is gone (logged out).
	ResolveToken(ctx context.Context, token string) (*entity.User, error)

	// RevokeToken removes exactly the given session from the user's ledger.
	// Revoking an absent token is a no-op.
	RevokeToken(ctx context.Context, user *entity.User, token string) error

	// RevokeAllTokens ends every session the user holds.
	RevokeAllTokens(ctx context.Context, user *entity.User) error
}
