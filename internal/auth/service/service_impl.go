package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/auth/password"
	"github.com/skillshare/skillshare/internal/auth/token"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/skillshare/skillshare/internal/providers/email"
	"github.com/skillshare/skillshare/pkg/db"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	codec       *token.Codec
	mailer      email.Provider
	clock       clock.Clock
	genID       *snowflake.Node
	sessionTTL  time.Duration
	frontendURL string
}

func New(
	log *zap.Logger,
	repo domain.Repository,
	codec *token.Codec,
	mailer email.Provider,
	clk clock.Clock,
	genID *snowflake.Node,
	sessionTTL time.Duration,
	frontendURL string,
) domain.Service {
	return &Service{
		log:         log.Named("auth.service"),
		repo:        repo,
		codec:       codec,
		mailer:      mailer,
		clock:       clk,
		genID:       genID,
		sessionTTL:  sessionTTL,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	normalized, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrEncoding
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrEncoding
	}

	if _, err := s.repo.FindByEmail(ctx, normalized); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:           s.genID.Generate(),
		ExternalID:   uuid.NewString(),
		Email:        normalized,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         req.Role,
		IsVerified:   false,
		IsActive:     true,
		Country:      req.Country,
		City:         req.City,
		Timezone:     req.Timezone,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	verifyToken, verifyExpires, err := s.codec.Issue(user.ID.String(), token.PurposeEmailVerification, token.VerificationTTL)
	if err != nil {
		return nil, err
	}
	user.EmailVerifyToken = &verifyToken
	user.EmailVerifyExpires = &verifyExpires

	if err := s.repo.Create(ctx, user); err != nil {
		// Unique index on email closes the check-then-create race.
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, err
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, url.QueryEscape(verifyToken))
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), verifyURL); err != nil {
		s.log.Warn("failed to send verification email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}

	return s.issueSession(user)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	normalized, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalized)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Same error as a bad password so callers cannot probe for accounts.
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	if err := s.repo.UpdateFields(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return s.issueSession(user)
}

func (s *Service) VerifyEmail(ctx context.Context, rawToken string) error {
	user, err := s.consumeToken(ctx, rawToken, token.PurposeEmailVerification)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateFields(ctx, user.ID, map[string]any{
		"is_verified":          true,
		"email_verify_token":   nil,
		"email_verify_expires": nil,
	}); err != nil {
		return err
	}

	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.FullName()); err != nil {
		s.log.Warn("failed to send welcome email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	normalized, err := normalizeEmail(emailAddr)
	if err != nil {
		return nil
	}

	user, err := s.repo.FindByEmail(ctx, normalized)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Respond identically whether or not the account exists.
		return nil
	}
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}

	resetToken, resetExpires, err := s.codec.Issue(user.ID.String(), token.PurposePasswordReset, token.ResetTTL)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateFields(ctx, user.ID, map[string]any{
		"reset_token":   resetToken,
		"reset_expires": resetExpires,
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, url.QueryEscape(resetToken))
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.FullName(), resetURL); err != nil {
		s.log.Warn("failed to send password reset email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return domain.ErrEncoding
	}

	user, err := s.consumeToken(ctx, rawToken, token.PurposePasswordReset)
	if err != nil {
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdateFields(ctx, user.ID, map[string]any{
		"password_hash": hashed,
		"reset_token":   nil,
		"reset_expires": nil,
	})
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := s.codec.Verify(rawToken, token.PurposeSession)
	if err != nil {
		return nil, err
	}

	id, err := snowflake.ParseString(claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Valid signature but the subject no longer exists.
		return nil, domain.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}
	return user, nil
}

// consumeToken verifies a single-use token end to end: signature and expiry,
// subject resolution, and equality against the copy stored on the account.
// Every failure collapses to the same error so callers cannot distinguish a
// forged token from a consumed one.
func (s *Service) consumeToken(ctx context.Context, rawToken string, purpose token.Purpose) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	claims, err := s.codec.Verify(rawToken, purpose)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	id, err := snowflake.ParseString(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return nil, err
	}

	var stored *string
	var expires *time.Time
	switch purpose {
	case token.PurposeEmailVerification:
		stored, expires = user.EmailVerifyToken, user.EmailVerifyExpires
	case token.PurposePasswordReset:
		stored, expires = user.ResetToken, user.ResetExpires
	default:
		return nil, domain.ErrInvalidOrExpiredToken
	}

	if stored == nil || expires == nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	if subtle.ConstantTimeCompare([]byte(*stored), []byte(rawToken)) != 1 {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	if !s.clock.Now().Before(*expires) {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	return user, nil
}

func (s *Service) issueSession(user *domain.User) (*domain.AuthResult, error) {
	sessionToken, expiresAt, err := s.codec.Issue(user.ID.String(), token.PurposeSession, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{
		User:      user.Public(),
		Token:     sessionToken,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" {
		return "", errors.New("empty email")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}
