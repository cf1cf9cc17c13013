package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/internal/account/store"
	"github.com/telemost/accountd/pkg/httpx"
	"github.com/telemost/accountd/pkg/jwtx"
	"github.com/telemost/accountd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	Directory      *service.Directory
	TokenService   *service.TokenService
	Vault          *service.Vault
	TrafficService *service.TrafficService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerFiles()
	r.registerTraffic()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a handler with bearer-token verification. The middleware is
// the single place identity gets established; handlers only ever read the
// verified subject from the request context.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h, httpx.AuthnMiddleware(r.verifier))
}

func (r *Router) registerAccounts() {
	r.Mux.Handle("POST /register", &RegisterHandler{Directory: r.Directory})
	r.Mux.Handle("POST /login", &LoginHandler{
		Directory:    r.Directory,
		TokenService: r.TokenService,
	})

	r.Mux.Handle("POST /plan_selection",
		r.secured(&PlanSelectionHandler{Directory: r.Directory}))
	r.Mux.Handle("POST /update_email",
		r.secured(&UpdateEmailHandler{Directory: r.Directory}))
	r.Mux.Handle("POST /update_password",
		r.secured(&UpdatePasswordHandler{Directory: r.Directory}))
}

func (r *Router) registerFiles() {
	r.Mux.Handle("GET /download_call_records/{size}",
		r.secured(&DownloadRecordsHandler{
			Directory: r.Directory,
			Vault:     r.Vault,
		}))
	r.Mux.Handle("POST /upload", &UploadHandler{Vault: r.Vault})
}

func (r *Router) registerTraffic() {
	r.Mux.Handle("GET /get_random_mobile_traffic",
		&TrafficHandler{TrafficService: r.TrafficService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
