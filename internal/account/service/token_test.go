package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telemost/accountd/pkg/jwtx"
)

func newTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()

	secret := []byte("token-service-test-secret")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	return &TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(secret, "accountd-test"),
		Issuer:   "accountd-test",
		TTL:      ttl,
	}
}

func TestTokenServiceRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t, time.Minute)

	token, err := svc.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
}

func TestTokenServiceRejectsForeignToken(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t, time.Minute)

	otherSigner, err := jwtx.NewSignerHS256([]byte("a-different-secret"))
	require.NoError(t, err)
	claims := jwtx.NewSessionClaims("alice@example.com", "accountd-test", time.Minute, time.Now().UTC())
	forged, err := otherSigner.Sign(claims)
	require.NoError(t, err)

	_, err = svc.Verify(forged)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestTokenServiceDefaultTTL(t *testing.T) {
	t.Parallel()

	// A zero TTL falls back to the package default rather than minting
	// already-expired tokens.
	svc := newTokenService(t, 0)

	token, err := svc.Issue("bob@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", claims.Subject)
}
