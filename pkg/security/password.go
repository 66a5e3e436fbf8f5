package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrHashingFailed    = errors.New("password hashing failed")
)

const (
	MinPasswordLen = 8

	// maxPasswordBytes is the bcrypt input bound. Passwords are truncated to
	// this many bytes before hashing AND before verifying; the two paths must
	// always agree. This rule is version-locked: changing it invalidates
	// every digest already stored.
	maxPasswordBytes = 72
)

// Hasher provides one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a password hasher using bcrypt. Costs outside the
// valid bcrypt range fall back to the default cost.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}

	digest, err := bcrypt.GenerateFromPassword(truncate(password), b.cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest is
// treated as a mismatch, never an error.
func (b *bcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(password)) == nil
}

func truncate(password string) []byte {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return raw
}
