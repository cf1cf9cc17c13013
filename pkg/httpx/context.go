package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the verified token subject (the user's email at
	// issuance time). It is the only source of acting identity; handlers
	// must never take a user id or email from the request body instead.
	CtxKeySubject ctxKey = "subject"

	// CtxKeyClaims holds the full jwtx.Claims if a handler needs them.
	CtxKeyClaims ctxKey = "claims"
)

// SubjectFromCtx returns the verified token subject, or "" when the request
// did not pass through the authn middleware.
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
