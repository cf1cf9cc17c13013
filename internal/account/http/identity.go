package http

import (
	"errors"
	"net/http"

	"github.com/telemost/accountd/internal/account/domain"
	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/httpx"
	"github.com/telemost/accountd/pkg/slogx"
)

// resolveActingUser turns the verified token subject into a current user
// record. The subject from the context is the only accepted identity
// source; a token that outlived its account answers 404. The bool reports
// whether the caller may proceed.
func resolveActingUser(
	w http.ResponseWriter,
	r *http.Request,
	directory *service.Directory,
) (domain.User, bool) {
	ctx := r.Context()

	subject := httpx.SubjectFromCtx(ctx)
	if subject == "" {
		// Only reachable if a route skipped the authn middleware.
		writeMessage(w, http.StatusUnauthorized, "missing bearer token")
		return domain.User{}, false
	}

	user, err := directory.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return domain.User{}, false
		}
		slogx.FromContext(ctx).Error("resolve acting user failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return domain.User{}, false
	}

	return user, true
}
