package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"jethabot/config"
	"jethabot/model"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires the session API onto a chi router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Post("/credential", h.SetCredential)
			r.Delete("/credential", h.ResetCredential)
			r.Post("/messages", h.SendMessage)
			r.Delete("/messages", h.ClearMessages)
		})
	})

	return r
}

// Run serves the session API until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg *config.Config, connect model.Connector) error {
	store := NewStore(cfg, connect)
	store.StartJanitor(ctx, cfg.SessionTTL)

	srv := &http.Server{
		Addr:         cfg.ServerListen,
		Handler:      NewRouter(NewHandler(store)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Jethalal Bot API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down gracefully...")
	config.Debugf("[Server] Shutdown with %d active sessions", store.Len())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
