// Package credential hashes and verifies user passwords.
//
// Every encoded hash carries its algorithm tag as a prefix ("$2a$" for bcrypt,
// "$argon2id$" for Argon2id), so a Registry can verify hashes produced by any
// registered algorithm while new hashes use the configured default.
package credential

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownScheme = errors.New("credential: unknown hash scheme")
	ErrMalformedHash = errors.New("credential: malformed hash")
)

// Hasher is one password hashing algorithm.
type Hasher interface {
	// ID is the configuration name of the algorithm.
	ID() string
	Hash(plain string) (string, error)
	// Verify reports whether plain matches encoded. A mismatch is not an error.
	Verify(encoded, plain string) (bool, error)
	// Recognizes reports whether encoded was produced by this algorithm.
	Recognizes(encoded string) bool
}

// Registry hashes with a default algorithm and verifies with whichever
// registered algorithm recognizes the stored hash.
type Registry struct {
	def     Hasher
	hashers []Hasher
}

// NewRegistry builds a Registry from hashers, using the one whose ID equals
// defaultID for new hashes.
func NewRegistry(defaultID string, hashers ...Hasher) (*Registry, error) {
	r := &Registry{hashers: hashers}
	for _, h := range hashers {
		if h.ID() == defaultID {
			r.def = h
		}
	}
	if r.def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, defaultID)
	}
	return r, nil
}

// NewDefaultRegistry registers bcrypt (with bcryptCost) and Argon2id.
func NewDefaultRegistry(defaultID string, bcryptCost int) (*Registry, error) {
	return NewRegistry(defaultID, NewBcrypt(bcryptCost), NewArgon2id())
}

func (r *Registry) Hash(plain string) (string, error) {
	return r.def.Hash(plain)
}

func (r *Registry) Verify(encoded, plain string) (bool, error) {
	h, err := r.lookup(encoded)
	if err != nil {
		return false, err
	}
	return h.Verify(encoded, plain)
}

func (r *Registry) lookup(encoded string) (Hasher, error) {
	for _, h := range r.hashers {
		if h.Recognizes(encoded) {
			return h, nil
		}
	}
	scheme := encoded
	if i := strings.IndexByte(strings.TrimPrefix(encoded, "$"), '$'); i >= 0 {
		scheme = encoded[:i+1]
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}
