package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lead-webhook/internal/common/logger"
)

// Server runs the router until its context is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
type Server struct {
	srv             *http.Server
	logger          logger.Logger
	shutdownTimeout time.Duration
}

func New(addr string, handler http.Handler, shutdownTimeout time.Duration, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          log,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run blocks until ctx is done or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("Starting server", map[string]interface{}{"addr": s.srv.Addr})
		serverErrors <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("Shutdown signal received", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Could not stop server gracefully", map[string]interface{}{"error": err})
			_ = s.srv.Close()
			return err
		}
		return nil
	}
}
