// Package api wires the HTTP surface: marketing pages, the JSON form
// endpoints, and the newsletter token links.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/forgepoint/site-server/internal/config"
	"github.com/forgepoint/site-server/internal/content"
	"github.com/forgepoint/site-server/internal/crm"
	"github.com/forgepoint/site-server/internal/newsletter"
	"github.com/forgepoint/site-server/internal/pkg/logger"
	"github.com/forgepoint/site-server/internal/ratelimit"
	"github.com/forgepoint/site-server/internal/site"
)

// Server is the HTTP server for the marketing site.
type Server struct {
	cfg        *config.Config
	renderer   *site.Renderer
	library    *content.Library
	newsletter *newsletter.Service
	forwarder  *crm.Forwarder
	limiter    *ratelimit.Limiter

	httpServer *http.Server
}

// NewServer assembles the server from its dependencies. forwarder and
// limiter may be nil (CRM disabled, no Redis); the relevant endpoints
// degrade rather than fail.
func NewServer(cfg *config.Config, renderer *site.Renderer, library *content.Library, nl *newsletter.Service, forwarder *crm.Forwarder, limiter *ratelimit.Limiter) *Server {
	s := &Server{
		cfg:        cfg,
		renderer:   renderer,
		library:    library,
		newsletter: nl,
		forwarder:  forwarder,
		limiter:    limiter,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
