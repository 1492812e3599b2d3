package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCodec hashes passwords with bcrypt. The salt is generated per call
// and embedded in the resulting hash.
type BcryptCodec struct {
	cost int
}

// NewBcryptCodec returns a codec using cost, falling back to
// bcrypt.DefaultCost when cost is out of bcrypt's accepted range.
func NewBcryptCodec(cost int) *BcryptCodec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptCodec{cost: cost}
}

func (c *BcryptCodec) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is treated
// as a mismatch.
func (c *BcryptCodec) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
