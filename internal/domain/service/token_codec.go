package service

import "github.com/google/uuid"

// TokenCodec defines the interface for minting and verifying signed session
// tokens. A token binds a subject identity to a purpose under a process-wide
// secret; the codec says nothing about whether the session is still live.
// That is the token ledger's job.
type TokenCodec interface {
	// Encode serializes (subjectID, purpose) and signs it with the
	// process-wide secret, returning one opaque token string.
	Encode(subjectID uuid.UUID, purpose string) (string, error)

	// Decode verifies the signature and returns the subject identity.
	// The payload is never trusted before the signature checks out.
	// A malformed token, a bad signature, or a purpose other than
	// wantPurpose all fail.
	Decode(token string, wantPurpose string) (uuid.UUID, error)
}
