package token

import (
	"testing"
	"time"

	"github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestNewCodec_EmptySecret(t *testing.T) {
	_, err := NewCodec("", clock.New())
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec, err := NewCodec("test-secret", clock.New())
	require.NoError(t, err)

	raw, expiresAt, err := codec.Issue("12345", PurposeSession, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := codec.Verify(raw, PurposeSession)
	require.NoError(t, err)
	require.Equal(t, "12345", claims.Subject)
	require.Equal(t, PurposeSession, claims.Purpose)
}

func TestCodec_Expiry(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	codec, err := NewCodec("test-secret", clk)
	require.NoError(t, err)

	raw, _, err := codec.Issue("12345", PurposeSession, time.Hour)
	require.NoError(t, err)

	// Still valid just before expiry.
	clk.Advance(time.Hour - time.Second)
	_, err = codec.Verify(raw, PurposeSession)
	require.NoError(t, err)

	// Expired at/after the deadline.
	clk.Advance(2 * time.Second)
	_, err = codec.Verify(raw, PurposeSession)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestCodec_NegativeTTLExpiresImmediately(t *testing.T) {
	codec, err := NewCodec("test-secret", clock.New())
	require.NoError(t, err)

	raw, _, err := codec.Issue("12345", PurposeSession, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(raw, PurposeSession)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestCodec_WrongPurpose(t *testing.T) {
	codec, err := NewCodec("test-secret", clock.New())
	require.NoError(t, err)

	raw, _, err := codec.Issue("12345", PurposeEmailVerification, VerificationTTL)
	require.NoError(t, err)

	_, err = codec.Verify(raw, PurposeSession)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer, err := NewCodec("secret-a", clock.New())
	require.NoError(t, err)
	verifier, err := NewCodec("secret-b", clock.New())
	require.NoError(t, err)

	raw, _, err := issuer.Issue("12345", PurposeSession, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(raw, PurposeSession)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestCodec_Garbage(t *testing.T) {
	codec, err := NewCodec("test-secret", clock.New())
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "aa.bb.cc"} {
		_, err := codec.Verify(raw, PurposeSession)
		require.ErrorIs(t, err, domain.ErrTokenInvalid)
	}
}
