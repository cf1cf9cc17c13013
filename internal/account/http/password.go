package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/slogx"
)

type UpdatePasswordHandler struct {
	Directory *service.Directory
}

// ServeHTTP re-hashes and overwrites the acting user's credential. The
// plaintext goes straight to the hasher and is never logged.
func (h *UpdatePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid XML provided")
		return
	}

	newPassword, found, err := xmlField(body, "new_password")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid XML provided")
		return
	}
	if !found || newPassword == "" {
		writeMessage(w, http.StatusBadRequest, "new_password is required in the XML body")
		return
	}

	user, ok := resolveActingUser(w, r, h.Directory)
	if !ok {
		return
	}

	err = h.Directory.UpdatePassword(ctx, user.ID, newPassword)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		log.Error("update password failed", "user_id", user.ID, "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeXMLMessage(w, "Password updated successfully")
}
