package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/slogx"
)

type UpdateEmailHandler struct {
	Directory *service.Directory
}

// ServeHTTP changes the acting user's login email. The new address must
// not belong to another record; a conflict answers 400, matching the
// inherited contract (409 would be more idiomatic).
func (h *UpdateEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid XML provided")
		return
	}

	newEmail, found, err := xmlField(body, "new_email")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid XML provided")
		return
	}
	if !found || newEmail == "" {
		writeMessage(w, http.StatusBadRequest, "new_email is required in the XML body")
		return
	}

	user, ok := resolveActingUser(w, r, h.Directory)
	if !ok {
		return
	}

	err = h.Directory.UpdateEmail(ctx, user.ID, newEmail)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "The new email is already in use")
		return
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		log.Error("update email failed", "user_id", user.ID, "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeXMLMessage(w, "Email updated successfully")
}
