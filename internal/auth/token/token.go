// Package token issues and verifies the signed, stateless tokens used for
// sessions, email verification, and password resets.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/clock"
)

// Purpose narrows a token to a single issuance path. A token presented for
// the wrong purpose is invalid, not expired.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Default lifetimes per issuance path.
const (
	VerificationTTL = 24 * time.Hour
	ResetTTL        = time.Hour
)

type Claims struct {
	jwt.RegisteredClaims
	Purpose Purpose `json:"purpose"`
}

// Codec signs and verifies tokens with a process-wide secret. The secret is
// validated once at construction, not per call.
type Codec struct {
	secret []byte
	clock  clock.Clock
}

var ErrEmptySecret = errors.New("token signing secret is empty")

func NewCodec(secret string, clk clock.Clock) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Codec{secret: []byte(secret), clock: clk}, nil
}

// Issue signs a token for subject with the given purpose and lifetime.
func (c *Codec) Issue(subject string, purpose Purpose, ttl time.Duration) (string, time.Time, error) {
	now := c.clock.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Purpose: purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, structure, expiry, and purpose. No claim is
// returned unless every check passes.
func (c *Codec) Verify(raw string, purpose Purpose) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Purpose != purpose || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
