package domain

import (
	"context"
	"time"
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	VerifyEmail(ctx context.Context, rawToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error

	// Authenticate resolves a session token to its account. It is the
	// resolution half of the request gate: signature and expiry checks,
	// dangling-subject rejection, and the deactivation gate.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
}

type SignupRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
	Country   string
	City      string
	Timezone  string
}

type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult is returned by signup and login: the public account view plus a
// fresh session token.
type AuthResult struct {
	User      PublicProfile `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}
