// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. It owns the password digest and the
// ledger of live session tokens; everything else in the system hangs off it.
type User struct {
	ID             uuid.UUID       // The unique identifier for the account, assigned at creation.
	Email          string          // Login identifier; stored lowercased so uniqueness is case-insensitive.
	PasswordDigest string          // bcrypt output; never the plaintext, recomputed whenever the password changes.
	Tokens         []*SessionToken // Ordered ledger of live sessions, appended on login, removed on logout.
	CreatedAt      time.Time       // Timestamp of when this account was created.
	UpdatedAt      time.Time       // Timestamp of the last modification to this account.
}

// HasToken reports whether the exact token string is present in the ledger.
// Signature validity alone does not make a token live; it must also be here.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t.Token == token {
			return true
		}
	}

	return false
}
