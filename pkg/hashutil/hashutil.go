// Package hashutil creates random tokens and short, url safe hashes of usage keys.
//
// Tokens are not suitable for encryption; they are only meant to be hard to guess.
package hashutil

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/blake2b"
)

const (
	randomAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	randomLength     = 32
	shortTokenLength = 32
	usageKeyHashSize = 6
)

// CreateHash256 returns the hex sha256 of a random string salted with secret.
// A maxLength <= 0 keeps the full 64 characters.
func CreateHash256(maxLength int, secret string) (string, error) {
	random, err := gonanoid.Generate(randomAlphabet, randomLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(random))
	h.Write([]byte(secret))
	out := hex.EncodeToString(h.Sum(nil))

	if maxLength > 0 && len(out) > maxLength {
		return out[:maxLength], nil
	}
	return out, nil
}

// ShortToken returns a 32 character random token.
func ShortToken(secret string) (string, error) {
	return CreateHash256(shortTokenLength, secret)
}

// HashUsageKey returns the url safe base64 encoding of the hex blake2b digest of usageKey.
// The result is what the courseware api accepts in place of a full sequence usage key.
func HashUsageKey(usageKey string) string {
	h, _ := blake2b.New(usageKeyHashSize, nil)
	h.Write([]byte(usageKey))
	hexDigest := hex.EncodeToString(h.Sum(nil))

	return base64.URLEncoding.EncodeToString([]byte(hexDigest))
}

// IsPotentialUsageKeyHash reports whether s could be an output of HashUsageKey.
func IsPotentialUsageKeyHash(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
