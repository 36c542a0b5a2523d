// Package httpapi serves scored batches over a read-only JSON API.
//
// The record batch is loaded and scored once at startup; every endpoint
// answers from that in-memory snapshot. Restart the server to pick up
// new records.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server holds the scored snapshot that the handlers answer from.
type Server struct {
	cfg     *contract.Config
	reports []schema.ScoreReport
}

// NewServer scores the configured record batch and returns a server ready
// to route requests against it.
func NewServer(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*Server, error) {
	reports, err := core.ScoreBatch(core.WithSuppressHeader(ctx), cfg, mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to score record batch: %w", err)
	}
	return &Server{cfg: cfg, reports: reports}, nil
}

// Router wires the read-only API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.getHealth).Methods("GET")
	r.HandleFunc("/api/modes", s.getModes).Methods("GET")
	r.HandleFunc("/api/products", s.getProducts).Methods("GET")
	r.HandleFunc("/api/products/{brand}", s.getProduct).Methods("GET")
	r.HandleFunc("/api/leaderboard", s.getLeaderboard).Methods("GET")

	return r
}

// Serve scores the batch, then blocks serving HTTP until the context is
// canceled or a SIGINT/SIGTERM arrives, at which point it drains in-flight
// requests before returning.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	s, err := NewServer(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	handler := handlers.LoggingHandler(os.Stderr, handlers.RecoveryHandler()(s.Router()))
	srv := &http.Server{
		Addr:         cfg.ServeAddr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("🌐 Serving %d scored product(s) on %s\n", len(s.reports), cfg.ServeAddr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
