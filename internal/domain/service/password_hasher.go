// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two calls with
	// the same plaintext yield different digests. Hashing an empty string is
	// a programmer error and fails.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored digest. A mismatch is
	// a normal false result, never an error; malformed digests are false too.
	Check(password, digest string) bool
}
