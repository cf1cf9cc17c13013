package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/telemost/accountd/pkg/idx"
)

// HTTPMiddleware assigns every request a ULID id, stores a request-scoped
// logger in the context and emits one access line per request. Only the
// method, path, status and sizes are recorded: request bodies on this API
// carry passwords and tokens and must never reach the log.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := idx.New().String()

			logger := base.With("req_id", reqID)
			w.Header().Set("X-Request-Id", reqID)

			aw := &accessWriter{ResponseWriter: w}
			ctx := WithContext(r.Context(), logger)
			next.ServeHTTP(aw, r.WithContext(ctx))

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", aw.Status(),
				"bytes", aw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// accessWriter records the status code and body size for the access line.
type accessWriter struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (w *accessWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *accessWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Status reports the written status, defaulting to 200 when the handler
// never called WriteHeader.
func (w *accessWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
