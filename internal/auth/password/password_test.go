package password

import (
	"testing"

	"github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	digest, err := Hash("Passw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd!", digest)

	require.True(t, Verify("Passw0rd!", digest))
	require.False(t, Verify("passw0rd!", digest))
	require.False(t, Verify("", digest))
}

func TestHashEmptyInput(t *testing.T) {
	_, err := Hash("")
	require.ErrorIs(t, err, domain.ErrEncoding)

	_, err = Hash("   ")
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestVerifyMalformedDigest(t *testing.T) {
	require.False(t, Verify("anything", "not-a-bcrypt-digest"))
	require.False(t, Verify("anything", ""))
}

func TestHashesAreSalted(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.True(t, Verify("same-password", a))
	require.True(t, Verify("same-password", b))
}
