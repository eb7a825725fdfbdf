package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// drainTimeout bounds how long in-flight requests may run after a
// shutdown signal before the listener is torn down.
const drainTimeout = 5 * time.Second

// AwaitShutdown blocks until SIGINT or SIGTERM, then drains the HTTP
// server. A second signal cuts the drain short. done is closed once the
// server has stopped accepting connections.
func (s *Server) AwaitShutdown(httpSrv *http.Server, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	s.logger.Info("Shutdown signal received, draining requests")

	// Re-arm signal delivery so a second signal kills the drain too.
	stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(drainCtx); err != nil {
		s.logger.Error("Drain cut short", zap.Error(err))
	}

	s.logger.Info("HTTP server stopped")
	close(done)
}
