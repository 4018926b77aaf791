// Package server exposes the emission engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"wastecarbon-go/src/config"
	emissionmetricscalculator "wastecarbon-go/src/emission-metrics-calculator"
)

const (
	// MaxRequestBytes bounds the size of a request body.
	MaxRequestBytes = 1 << 20
	ShutdownTimeout = 10 * time.Second
)

type Server struct {
	calculator  *emissionmetricscalculator.EmissionMetricsCalculator
	cfg         config.ServerConfig
	rateLimiter *RateLimiter
	handler     http.Handler
}

func NewServer(
	calculator *emissionmetricscalculator.EmissionMetricsCalculator,
	cfg config.ServerConfig,
) (*Server, error) {
	if calculator == nil {
		return nil, errors.New("server requires an emission calculator")
	}
	s := &Server{calculator: calculator, cfg: cfg}
	if cfg.RateLimit > 0 {
		trusted, err := cfg.TrustedProxyPrefixes()
		if err != nil {
			return nil, err
		}
		s.rateLimiter = NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.Burst, trusted)
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/transportation/calculate", instrument("transportation", http.HandlerFunc(s.handleTransportation)))
	mux.Handle("POST /v1/incineration/calculate", instrument("incineration", http.HandlerFunc(s.handleIncineration)))
	mux.Handle("POST /v1/emissions/calculate", instrument("emissions", http.HandlerFunc(s.handleEmissions)))
	mux.Handle("POST /v1/emissions/batch", instrument("batch", http.HandlerFunc(s.handleBatch)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	if s.rateLimiter != nil {
		handler = s.rateLimiter.Middleware(handler)
	}
	return handler
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if s.rateLimiter != nil {
		defer s.rateLimiter.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// Close releases the rate limiter of a server that was never run.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
