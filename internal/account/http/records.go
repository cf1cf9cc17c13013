package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/httpx"
)

type DownloadRecordsHandler struct {
	Directory *service.Directory
	Vault     *service.Vault
}

// ServeHTTP streams a staged call-record archive. The attachment name
// embeds the requesting user's id and the current timestamp, so the same
// archive downloads under a different name for every user and request.
func (h *DownloadRecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	size := r.PathValue("size")

	user, ok := resolveActingUser(w, r, h.Directory)
	if !ok {
		return
	}

	path, err := h.Vault.ResolveDownload(size)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeMessage(w, http.StatusNotFound, fmt.Sprintf("File %s.zip not found", size))
			return
		}
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	name := service.DownloadName(user.ID, size, time.Now())
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}
