package lobby

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

var ErrIdentifierSpaceExhausted = errors.New("no free game identifier")

const (
	DefaultIdentifierDigits   = 5
	defaultIdentifierAttempts = 1000
)

// IdentifierGenerator mints numeric game identifiers of a fixed width, e.g. 10000-99999
// for five digits. Tests shrink Digits to force collisions.
type IdentifierGenerator struct {
	Digits      int
	MaxAttempts int
}

func (g IdentifierGenerator) digits() int {
	if g.Digits <= 0 || g.Digits > 18 {
		return DefaultIdentifierDigits
	}
	return g.Digits
}

func (g IdentifierGenerator) attempts() int {
	if g.MaxAttempts <= 0 {
		return defaultIdentifierAttempts
	}
	return g.MaxAttempts
}

// Keyspace is the number of distinct identifiers.
func (g IdentifierGenerator) Keyspace() int64 {
	lo, hi := g.bounds()
	return hi - lo + 1
}

func (g IdentifierGenerator) bounds() (lo, hi int64) {
	lo = 1
	for i := 1; i < g.digits(); i++ {
		lo *= 10
	}
	return lo, lo*10 - 1
}

// Next returns one random identifier. Uniqueness is the caller's job.
func (g IdentifierGenerator) Next() (string, error) {
	lo, _ := g.bounds()
	n, err := rand.Int(rand.Reader, big.NewInt(g.Keyspace()))
	if err != nil {
		return "", fmt.Errorf("mint identifier: %w", err)
	}
	return fmt.Sprintf("%d", lo+n.Int64()), nil
}

// Allocate draws identifiers until claim accepts one, up to MaxAttempts.
func (g IdentifierGenerator) Allocate(claim func(id string) (bool, error)) (string, error) {
	for i := 0; i < g.attempts(); i++ {
		id, err := g.Next()
		if err != nil {
			return "", err
		}
		ok, err := claim(id)
		if err != nil {
			return "", err
		}
		if ok {
			return id, nil
		}
	}
	return "", ErrIdentifierSpaceExhausted
}
