package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accounthttp "github.com/telemost/accountd/internal/account/http"
	"github.com/telemost/accountd/internal/account/service"
	"github.com/telemost/accountd/internal/account/store"
	"github.com/telemost/accountd/internal/account/store/drivers/sqlite"
	"github.com/telemost/accountd/pkg/jwtx"
	"github.com/telemost/accountd/pkg/slogx"
)

// Version is the build version, set via ldflags at build time.
var Version = "dev"

// Application holds the wired-up service and its lifecycle hooks.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store  store.Store
	router *accounthttp.Router
	server *http.Server
}

// New constructs the application: logger, database, token machinery,
// services and the HTTP server. Nothing starts listening until Run.
func New(cfg Config) (*Application, error) {
	logger := slogx.New(slogx.Config{
		Service: "accountd",
		Version: Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	a := &Application{
		cfg:    cfg,
		logger: logger,
	}

	if err := a.initDatabase(); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if err := a.initHTTP(); err != nil {
		a.store.Close()
		return nil, fmt.Errorf("init http: %w", err)
	}

	return a, nil
}

func (a *Application) initDatabase() error {
	st, err := sqlite.NewStore(a.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("open sqlite store: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		st.Close()
		return fmt.Errorf("apply migrations: %w", err)
	}

	a.store = st
	return nil
}

func (a *Application) initHTTP() error {
	signer, err := jwtx.NewSignerHS256([]byte(a.cfg.TokenSecret))
	if err != nil {
		return fmt.Errorf("build token signer: %w", err)
	}
	tokens := &service.TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256([]byte(a.cfg.TokenSecret), a.cfg.Issuer),
		Issuer:   a.cfg.Issuer,
		TTL:      a.cfg.TokenTTL,
	}

	vault, err := service.NewVault(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("prepare data dir: %w", err)
	}

	router := accounthttp.NewRouter(tokens, Version, a.store, a.logger)
	router.Directory = &service.Directory{Store: a.store}
	router.TokenService = tokens
	router.Vault = vault
	router.TrafficService = &service.TrafficService{Store: a.store}
	router.ApplyRoutes()

	a.router = router
	a.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.Host, a.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Run starts the HTTP server and blocks until the process receives
// SIGINT or SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.store.Close()
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		a.logger.Info("shutdown signal received", "signal", sig.String())
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests and closes the store.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("http shutdown failed", "error", err)
		a.store.Close()
		return fmt.Errorf("http shutdown: %w", err)
	}

	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}
