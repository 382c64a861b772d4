package utils

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxInput is the number of password bytes bcrypt actually reads.
const bcryptMaxInput = 72

// Hasher hashes and verifies passwords with bcrypt. Input beyond 72 bytes
// is truncated on both paths, so two passwords sharing their first 72
// bytes are indistinguishable.
type Hasher struct {
	cost int
	log  *zap.Logger
}

func NewHasher(cost int, log *zap.Logger) *Hasher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hasher{cost: cost, log: log}
}

// Hash returns a salted bcrypt digest of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. A malformed digest is
// logged and treated as a mismatch.
func (h *Hasher) Verify(plain, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), truncate(plain))
	switch {
	case err == nil:
		return true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false
	default:
		h.log.Warn("password digest could not be verified", zap.Error(err))
		return false
	}
}

func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}
