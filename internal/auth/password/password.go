// Package password provides one-way hashing and verification of account
// credentials.
package password

import (
	"strings"

	"github.com/skillshare/skillshare/internal/auth/domain"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. At 12 a single derivation takes on the
// order of 100ms on commodity hardware.
const Cost = 12

// Hash derives a salted bcrypt digest from a plaintext password.
func Hash(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", domain.ErrEncoding
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", domain.ErrEncoding
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. It never returns an
// error: any mismatch, including a malformed digest, is false.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
