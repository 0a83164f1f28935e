package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/auth/repository"
	"github.com/skillshare/skillshare/internal/auth/token"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type captureMailer struct {
	verifications []string
	resets        []string
	welcomes      []string
	fail          bool
}

var errMailDown = errors.New("smtp unavailable")

func (m *captureMailer) SendVerificationEmail(_ context.Context, to, _, _ string) error {
	if m.fail {
		return errMailDown
	}
	m.verifications = append(m.verifications, to)
	return nil
}

func (m *captureMailer) SendPasswordResetEmail(_ context.Context, to, _, _ string) error {
	if m.fail {
		return errMailDown
	}
	m.resets = append(m.resets, to)
	return nil
}

func (m *captureMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	if m.fail {
		return errMailDown
	}
	m.welcomes = append(m.welcomes, to)
	return nil
}

type testEnv struct {
	svc    domain.Service
	db     *gorm.DB
	clock  *clock.FakeClock
	mailer *captureMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	codec, err := token.NewCodec("test-secret", clk)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	mailer := &captureMailer{}
	svc := New(zap.NewNop(), repository.New(db), codec, mailer, clk, node, 7*24*time.Hour, "http://localhost:3000")

	return &testEnv{svc: svc, db: db, clock: clk, mailer: mailer}
}

func signupReq(email string) domain.SignupRequest {
	return domain.SignupRequest{
		Email:     email,
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      domain.RoleLearner,
	}
}

func (e *testEnv) findUser(t *testing.T, email string) *domain.User {
	t.Helper()
	var user domain.User
	require.NoError(t, e.db.Where("email = ?", email).First(&user).Error)
	return &user
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "ada@example.com", res.User.Email)
	require.Equal(t, domain.RoleLearner, res.User.Role)
	require.False(t, res.User.IsVerified)

	user := env.findUser(t, "ada@example.com")
	require.True(t, user.IsActive)
	require.NotNil(t, user.EmailVerifyToken)
	require.NotNil(t, user.EmailVerifyExpires)
	require.NotNil(t, user.LastLoginAt)
	require.NotEqual(t, "correct-horse", user.PasswordHash)

	require.Equal(t, []string{"ada@example.com"}, env.mailer.verifications)
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	_, err = env.svc.Signup(ctx, signupReq("ADA@Example.COM"))
	require.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestSignup_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	req := signupReq("ada@example.com")
	req.Password = "short"
	_, err := env.svc.Signup(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestSignup_MailFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.fail = true

	res, err := env.svc.Signup(context.Background(), signupReq("ada@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	// Email verification is not a login gate.
	res, err := env.svc.Login(ctx, domain.LoginRequest{Email: "Ada@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.NotNil(t, res.User.LastLoginAt)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	_, wrongPassword := env.svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	_, unknownEmail := env.svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})

	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	user := env.findUser(t, "ada@example.com")
	require.NoError(t, env.db.Model(&domain.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = env.svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrAccountDeactivated)
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	raw := *env.findUser(t, "ada@example.com").EmailVerifyToken
	require.NoError(t, env.svc.VerifyEmail(ctx, raw))

	user := env.findUser(t, "ada@example.com")
	require.True(t, user.IsVerified)
	require.Nil(t, user.EmailVerifyToken)
	require.Nil(t, user.EmailVerifyExpires)
	require.Equal(t, []string{"ada@example.com"}, env.mailer.welcomes)

	// Single use: the stored copy is gone.
	require.ErrorIs(t, env.svc.VerifyEmail(ctx, raw), domain.ErrInvalidOrExpiredToken)
}

func TestVerifyEmail_Expired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	raw := *env.findUser(t, "ada@example.com").EmailVerifyToken
	env.clock.Advance(25 * time.Hour)

	require.ErrorIs(t, env.svc.VerifyEmail(ctx, raw), domain.ErrInvalidOrExpiredToken)
}

func TestVerifyEmail_Garbage(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.VerifyEmail(context.Background(), "not-a-token")
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestRequestPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, env.svc.RequestPasswordReset(ctx, "ada@example.com"))

	user := env.findUser(t, "ada@example.com")
	require.NotNil(t, user.ResetToken)
	require.NotNil(t, user.ResetExpires)
	require.Equal(t, []string{"ada@example.com"}, env.mailer.resets)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	// Identical outcome whether or not the account exists.
	require.NoError(t, env.svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	require.Empty(t, env.mailer.resets)
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)
	require.NoError(t, env.svc.RequestPasswordReset(ctx, "ada@example.com"))

	raw := *env.findUser(t, "ada@example.com").ResetToken
	require.NoError(t, env.svc.ResetPassword(ctx, raw, "brand-new-password"))

	user := env.findUser(t, "ada@example.com")
	require.Nil(t, user.ResetToken)
	require.Nil(t, user.ResetExpires)

	_, err = env.svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "brand-new-password"})
	require.NoError(t, err)

	// Single use.
	require.ErrorIs(t, env.svc.ResetPassword(ctx, raw, "another-password"), domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_Expired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)
	require.NoError(t, env.svc.RequestPasswordReset(ctx, "ada@example.com"))

	raw := *env.findUser(t, "ada@example.com").ResetToken
	env.clock.Advance(2 * time.Hour)

	require.ErrorIs(t, env.svc.ResetPassword(ctx, raw, "brand-new-password"), domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.ResetPassword(context.Background(), "whatever", "short")
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	user, err := env.svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)
}

func TestAuthenticate_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	_, err = env.svc.Authenticate(ctx, "")
	require.ErrorIs(t, err, domain.ErrTokenMissing)

	_, err = env.svc.Authenticate(ctx, "not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	env.clock.Advance(8 * 24 * time.Hour)
	_, err = env.svc.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestAuthenticate_DeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Signup(ctx, signupReq("ada@example.com"))
	require.NoError(t, err)

	user := env.findUser(t, "ada@example.com")
	require.NoError(t, env.db.Model(&domain.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = env.svc.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, domain.ErrAccountDeactivated)
}
