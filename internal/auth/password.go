// Package auth provides the credential and session primitives: password
// hashing, session token signing, and the Redis-backed session registry.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "talenthub/internal/errors"
)

// DefaultBcryptCost bounds brute-force speed while keeping interactive
// login latency acceptable.
const DefaultBcryptCost = 10

// PasswordHasher hashes credentials and verifies candidates against
// stored hashes.
type PasswordHasher interface {
	// Hash produces a salted one-way hash of the plaintext. Each call
	// generates a fresh salt, so equal inputs yield distinct outputs.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash.
	// A mismatch is (false, nil); a stored hash that cannot be parsed
	// is (false, ErrCorruptCredential) so callers can tell a wrong
	// password from a damaged record.
	Verify(plaintext, storedHash string) (bool, error)
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given work factor. Costs
// outside bcrypt's supported range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted bcrypt hash of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares plaintext against the stored bcrypt hash.
func (h *BcryptHasher) Verify(plaintext, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// Anything else means the stored hash itself is unusable: truncated,
	// wrong prefix, or a future bcrypt version.
	return false, fmt.Errorf("%w: %v", apperrors.ErrCorruptCredential, err)
}
