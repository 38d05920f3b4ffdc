package lobby

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	TokenLength   = 16
	tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// NewToken returns a session token drawn uniformly from [0-9A-Za-z] with crypto/rand.
func NewToken() (string, error) {
	limit := big.NewInt(int64(len(tokenAlphabet)))
	b := make([]byte, TokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("mint token: %w", err)
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return string(b), nil
}

// WellFormedToken reports whether s could have been produced by NewToken.
func WellFormedToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z') {
			return false
		}
	}
	return true
}
