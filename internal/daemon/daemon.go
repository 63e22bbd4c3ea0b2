package daemon

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pflegedesk/pflegedesk/internal/api"
	"github.com/pflegedesk/pflegedesk/internal/app/ledger"
	"github.com/pflegedesk/pflegedesk/internal/app/registry"
	"github.com/pflegedesk/pflegedesk/internal/infra/sqlite"
)

// Run assembles the process and serves the HTTP API until SIGINT/SIGTERM.
// The storage handle is opened here, passed into the services, and closed
// on shutdown.
func Run(cfg Config) error {
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := registry.New(db)
	led := ledger.New(db, reg)

	server := api.NewServer(reg, led)
	if cfg.API.EnableMetrics {
		server.EnableMetrics()
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on http://%s (data: %s)", cfg.Addr(), cfg.Storage.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("[daemon] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
