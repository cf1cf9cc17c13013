package http

import (
	"net/http"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/httpx"
	"github.com/telemost/accountd/pkg/slogx"
)

type TrafficHandler struct {
	TrafficService *service.TrafficService
}

// ServeHTTP returns a uniform random sample of traffic rows as a JSON
// array. An empty table yields [].
func (h *TrafficHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.TrafficService.Sample(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("traffic sample failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rows)
}
