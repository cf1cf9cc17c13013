package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/httpx"
	"github.com/telemost/accountd/pkg/slogx"
)

type LoginHandler struct {
	Directory    *service.Directory
	TokenService *service.TokenService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// ServeHTTP checks credentials and mints a session token. Unknown email and
// wrong password answer differently (404 vs 401) - a preserved contract,
// not an oversight.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "email and password are required fields")
		return
	}

	user, err := h.Directory.Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, service.ErrBadCredentials):
		writeMessage(w, http.StatusUnauthorized, "Incorrect password")
		return
	case err != nil:
		log.Error("login failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.TokenService.Issue(user.Email)
	if err != nil {
		log.Error("token issue failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}
