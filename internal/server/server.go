// Package server provides the Connect RPC server for the cell store.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"cellstore/api/gen/cellstore/v1/cellstorev1connect"
	"cellstore/internal/logging"
	"cellstore/internal/store"
)

// Config holds server configuration.
type Config struct {
	// Logger for structured logging. If nil, logging is disabled.
	// The server scopes this logger with component="server".
	Logger *slog.Logger
}

// Server is the Connect RPC server. It serves h2c so gRPC clients work
// without TLS; the engine provides its own call serialization, so handlers
// run directly on the HTTP dispatch goroutines.
type Server struct {
	engine *store.Engine
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server

	inFlight sync.WaitGroup // tracks in-flight requests for graceful drain
	draining atomic.Bool    // true when rejecting new requests
}

// New creates a new Server around an engine.
func New(engine *store.Engine, cfg Config) *Server {
	return &Server{
		engine: engine,
		logger: logging.Default(cfg.Logger).With("component", "server"),
	}
}

// registerProbes adds liveness and readiness probe endpoints.
func (s *Server) registerProbes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.draining.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// trackingMiddleware wraps an http.Handler to track in-flight requests.
func (s *Server) trackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.draining.Load() {
			http.Error(w, "server is draining", http.StatusServiceUnavailable)
			return
		}
		s.inFlight.Add(1)
		defer s.inFlight.Done()
		next.ServeHTTP(w, r)
	})
}

// buildMux creates a ServeMux with the storage service handler and probe
// endpoints registered.
func (s *Server) buildMux(opts ...connect.HandlerOption) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(cellstorev1connect.NewStorageServiceHandler(NewStorageServer(s.engine, s.logger), opts...))
	s.registerProbes(mux)
	return mux
}

// Serve starts the server on the given listener and blocks until the server
// is stopped or an error occurs.
func (s *Server) Serve(listener net.Listener) error {
	mux := s.buildMux()
	handler := s.trackingMiddleware(mux)

	s.mu.Lock()
	s.listener = listener
	s.server = &http.Server{
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.server
	s.mu.Unlock()

	s.logger.Info("server starting", "addr", listener.Addr().String())

	err := server.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ServeTCP starts the server on a TCP address.
func (s *Server) ServeTCP(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Addr returns the listen address, or empty before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop drains in-flight requests and gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.mu.Unlock()

	if server == nil {
		return nil
	}

	s.logger.Info("server stopping")
	s.draining.Store(true)
	s.inFlight.Wait()
	return server.Shutdown(ctx)
}

// Handler returns an http.Handler for the server, for testing or embedding
// in another server.
func (s *Server) Handler() http.Handler {
	mux := s.buildMux()
	return s.trackingMiddleware(h2c.NewHandler(mux, &http2.Server{}))
}

// Client bundles Connect clients for the given base URL.
type Client struct {
	Storage cellstorev1connect.StorageServiceClient
}

// NewClient creates Connect clients for the given base URL.
func NewClient(baseURL string, opts ...connect.ClientOption) *Client {
	return NewClientWithHTTP(http.DefaultClient, baseURL, opts...)
}

// NewClientWithHTTP creates Connect clients with a custom HTTP client.
func NewClientWithHTTP(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	return &Client{
		Storage: cellstorev1connect.NewStorageServiceClient(httpClient, baseURL, opts...),
	}
}
