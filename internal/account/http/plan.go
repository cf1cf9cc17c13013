package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/slogx"
)

type PlanSelectionHandler struct {
	Directory *service.Directory
}

// ServeHTTP assigns a plan to the acting user. The request body is XML
// (<plan_id>), the success response is XML, error bodies stay JSON.
func (h *PlanSelectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid XML provided")
		return
	}

	raw, found, err := xmlField(body, "plan_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid XML provided")
		return
	}
	if !found || raw == "" {
		writeMessage(w, http.StatusBadRequest, "plan_id is required in the XML body")
		return
	}

	planID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "plan_id must be an integer")
		return
	}

	user, ok := resolveActingUser(w, r, h.Directory)
	if !ok {
		return
	}

	if err := h.Directory.SetPlan(ctx, user.ID, planID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("plan selection failed", "user_id", user.ID, "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeXMLMessage(w, "Plan selection successful")
}
