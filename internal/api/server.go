// Package api serves the palette generator over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"color-palette/internal/colorutil"
	"color-palette/internal/config"
	"color-palette/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Server is the JSON API for generating and checking colors.
type Server struct {
	Config *config.Config

	source  colorutil.Source
	sink    colorutil.TextSink
	limiter *RateLimiter
	trusted map[string]bool
	mux     *http.ServeMux

	mu sync.Mutex
	ln net.Listener
}

// NewServer wires the routes. A nil source falls back to
// colorutil.DefaultSource; a nil sink makes every copy fail.
func NewServer(cfg *config.Config, source colorutil.Source, sink colorutil.TextSink) *Server {
	if source == nil {
		source = colorutil.DefaultSource()
	}

	s := &Server{
		Config:  cfg,
		source:  source,
		sink:    sink,
		trusted: trustedSet(cfg.TrustedProxies),
		mux:     http.NewServeMux(),
	}
	if cfg.RateLimitRPM > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimitRPM)
	}

	s.route("GET /healthz", "healthz", s.handleHealth)
	s.route("GET /api/random", "random", s.handleRandom)
	s.route("GET /api/palette", "palette", s.handlePalette)
	s.route("GET /api/color", "color", s.handleColor)
	s.route("GET /api/contrast", "contrast", s.handleContrast)
	s.route("GET /api/accessibility", "accessibility", s.handleAccessibility)
	s.route("POST /api/copy", "copy", s.handleCopy)

	return s
}

func (s *Server) route(pattern, name string, h http.HandlerFunc) {
	s.mux.Handle(pattern, instrument(name, h))
}

// Handler returns the API with CORS and rate limiting applied.
func (s *Server) Handler() http.Handler {
	return cors(s.Config.AllowedOrigin, limit(s.limiter, s.trusted, s.mux))
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Start serves until ctx is cancelled, then drains in-flight requests.
// It returns nil after a clean shutdown, or the serve error if the listener
// fails first.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.Config.Timeout(),
		WriteTimeout:      s.Config.Timeout(),
	}

	ui.LogStatus("success", "API listening on http://"+ln.Addr().String())

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	ui.LogGracefulShutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		ui.LogStatus("warn", "Drain timeout reached. Forcing shutdown.")
		srv.Close()
		return err
	}
	<-serveErr
	ui.LogStatus("success", "All requests drained. Goodbye.")
	return nil
}
