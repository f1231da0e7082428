package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/watchword/watchword/config"
)

// Init starts the HTTP API when enabled and stops it when ctx is done.
func Init(ctx context.Context, provider Provider) error {
	cfg := config.C()
	if !cfg.API.Enable {
		return nil
	}
	if cfg.API.Token == "" {
		return fmt.Errorf("API is enabled but token is not configured, set api.token")
	}

	logger := log.FromContext(ctx).WithPrefix("api")
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      NewHandler(logger, provider, cfg.API.Token, cfg.API.TrustedIPs),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Starting API server on port %d", cfg.API.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("API server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Failed to shutdown API server: %v", err)
		} else {
			logger.Info("API server stopped")
		}
	}()

	return nil
}

// NewHandler builds the routed and authenticated API handler.
func NewHandler(logger *log.Logger, provider Provider, token string, trustedIPs []string) http.Handler {
	mux := http.NewServeMux()
	registerRoutes(mux, &handlers{provider: provider, now: time.Now})
	return loggingMiddleware(logger)(authMiddleware(token, trustedIPs)(mux))
}

func registerRoutes(mux *http.ServeMux, h *handlers) {
	// no auth
	mux.HandleFunc("/health", handleHealth)

	mux.HandleFunc("GET /api/v1/stats", h.handleStats)
	mux.HandleFunc("GET /api/v1/keywords", h.handleKeywords)
}
