package service

import (
	"time"

	"github.com/telemost/accountd/pkg/jwtx"
)

// TokenService issues and verifies the stateless session tokens handed out
// at login. Verification is pure computation against the process-wide
// secret; there is no session table and no server-side revocation - a
// token only stops working when it expires.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

var _ jwtx.Verifier = (*TokenService)(nil)

// Issue mints a signed session token whose subject is the user's email at
// issuance time.
func (s *TokenService) Issue(subject string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(subject, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// Verify validates a presented token. TokenService satisfies jwtx.Verifier
// so the authn middleware sits directly on the service; expiry and
// signature failures surface as the jwtx sentinel errors.
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}
