package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/config"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
)

// Server is the HTTP API run as a supervised service.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
		shutdownTimeout: 10 * time.Second,
	}
}

func (s *Server) String() string {
	return "http-server"
}

// Serve listens until ctx is canceled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.httpServer.Addr).Msg("[SERVER] Listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		logging.Info().Msg("[SERVER] Shutting down")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		<-errCh
		logging.Info().Msg("[SERVER] Stopped")
		return ctx.Err()
	}
}
