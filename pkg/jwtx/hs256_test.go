package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "accountd-test"

var testSecret = []byte("test-secret-at-least-32-bytes-long!")

func newTestPair(t *testing.T) (*HS256Signer, *HS256Verifier) {
	t.Helper()
	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	return signer, NewVerifierHS256(testSecret, testIssuer)
}

func TestNewSignerHS256_EmptySecret(t *testing.T) {
	_, err := NewSignerHS256(nil)
	require.Error(t, err)
}

func TestHS256_SignAndVerify(t *testing.T) {
	signer, verifier := newTestPair(t)

	claims := NewSessionClaims("alice@example.com", testIssuer, time.Hour, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")), "compact JWS has three segments")

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Subject)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be populated")
}

func TestHS256_ExpiredToken(t *testing.T) {
	signer, verifier := newTestPair(t)

	// Issued in the past so both exp and nbf are behind us.
	claims := NewSessionClaims("bob@example.com", testIssuer, time.Minute, time.Now().Add(-2*time.Minute))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256_TamperedToken(t *testing.T) {
	signer, verifier := newTestPair(t)

	claims := NewSessionClaims("carol@example.com", testIssuer, time.Hour, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = verifier.Verify(tampered)
	require.Error(t, err)
}

func TestHS256_WrongSecret(t *testing.T) {
	signer, _ := newTestPair(t)
	verifier := NewVerifierHS256([]byte("a-completely-different-secret-value"), testIssuer)

	claims := NewSessionClaims("dave@example.com", testIssuer, time.Hour, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256_IssuerMismatch(t *testing.T) {
	signer, verifier := newTestPair(t)

	claims := NewSessionClaims("erin@example.com", "some-other-service", time.Hour, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256_MalformedToken(t *testing.T) {
	_, verifier := newTestPair(t)

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, ErrMalformed, "token %q", token)
	}
}

func TestHS256_RejectsUnsignedAlg(t *testing.T) {
	_, verifier := newTestPair(t)

	claims := NewSessionClaims("frank@example.com", testIssuer, time.Hour, time.Now())
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err, "alg=none must never verify")
}

func TestClaims_ValidateExpiry(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		c := NewSessionClaims("s", testIssuer, time.Hour, time.Now())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired", func(t *testing.T) {
		c := NewSessionClaims("s", testIssuer, time.Minute, time.Now().Add(-2*time.Minute))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := NewSessionClaims("s", testIssuer, time.Hour, time.Now().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}
