package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/docstore"
	"github.com/wanderbase/wanderbase/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *docstore.Client
	router http.Handler
}

// New creates a new Server instance. The document store client connects
// lazily on first use, so construction succeeds even before store
// credentials are configured.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		store:  docstore.NewClient(cfg.Postgres, logger),
	}
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Store returns the document store client
func (s *Server) Store() *docstore.Client {
	return s.store
}

// Close closes all server resources
func (s *Server) Close() {
	s.store.Close()
}
