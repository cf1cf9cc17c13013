package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/slogx"
)

type RegisterHandler struct {
	Directory *service.Directory
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	PlanID      *int64 `json:"plan_id"`
	Password    string `json:"password"`
}

// ServeHTTP creates a new account. Registration does not issue a token;
// logging in is a separate step.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "name, email, phone_number, and password are required fields")
		return
	}

	_, err := h.Directory.Create(ctx, req.Name, req.Email, req.PhoneNumber, req.PlanID, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "name, email, phone_number, and password are required fields")
		return
	case errors.Is(err, service.ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "A user with this email already exists")
		return
	case err != nil:
		log.Error("register failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusCreated, "Registration successful")
}
