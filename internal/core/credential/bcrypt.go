package credential

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sweem/sweem-api/internal/core/domain"
)

const BcryptID = "bcrypt"

type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt hasher. Costs outside bcrypt's range fall back to
// bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) ID() string { return BcryptID }

func (b *Bcrypt) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.Invalid("password", "must be at most 72 bytes")
		}
		return "", err
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(encoded, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Join(ErrMalformedHash, err)
	}
}

func (b *Bcrypt) Recognizes(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}
