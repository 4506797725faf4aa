// Package server exposes the analysis API over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sambabib/version-autopsy/pkg/api"
	"github.com/sambabib/version-autopsy/pkg/logger"
)

// Options configures a Server.
type Options struct {
	Addr            string
	RateLimit       float64 // requests per second per client, 0 disables
	RateBurst       int
	ShutdownTimeout time.Duration
}

type Server struct {
	opts   Options
	engine *gin.Engine
}

// New wires the handler into a gin engine.
func New(h *Handler, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), AccessLog())

	engine.GET("/healthz", Healthz)

	apiGroup := engine.Group("/")
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		apiGroup.Use(RateLimit(NewIPRateLimiter(opts.RateLimit, burst)))
	}
	apiGroup.POST(api.PathAnalyze, h.Analyze)
	apiGroup.POST(api.PathCheckPackage, h.CheckPackage)
	apiGroup.POST(api.PathSubmitFeedback, h.SubmitFeedback)

	return &Server{opts: opts, engine: engine}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return goerr.Wrap(err, "failed to listen", goerr.V("addr", s.opts.Addr))
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return goerr.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	logger.Infof("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "failed to shut down")
	}
	return nil
}
