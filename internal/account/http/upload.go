package http

import (
	"errors"
	"net/http"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/pkg/httpx"
	"github.com/telemost/accountd/pkg/slogx"
)

// maxUploadBytes caps multipart parsing memory; larger files spill to disk.
const maxUploadBytes = 32 << 20

type UploadHandler struct {
	Vault *service.Vault
}

type uploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// ServeHTTP accepts an anonymous multipart upload in the "file" part and
// stores it under a timestamp-prefixed sanitized name.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "No file part")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part with an empty filename parses as a plain form value and
		// is invisible to FormFile; a browser "no file chosen" submit must
		// answer differently from a missing part.
		if _, present := r.MultipartForm.Value["file"]; present {
			writeMessage(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeMessage(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	stored, err := h.Vault.SaveUpload(header.Filename, file)
	switch {
	case errors.Is(err, service.ErrFileType):
		writeMessage(w, http.StatusBadRequest, "File type not allowed")
		return
	case err != nil:
		log.Error("upload failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, uploadResponse{
		Message:  "File uploaded successfully",
		Filename: stored,
	})
}
