package domain

import "errors"

var (
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDeactivated     = errors.New("account deactivated")
	ErrTokenExpired           = errors.New("token expired")
	ErrTokenInvalid           = errors.New("token invalid")
	ErrTokenMissing           = errors.New("token missing")
	ErrInvalidOrExpiredToken  = errors.New("invalid or expired token")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInsufficientRole       = errors.New("insufficient role")
	ErrEncoding               = errors.New("malformed input")
	ErrUserNotFound           = errors.New("user not found")
)
