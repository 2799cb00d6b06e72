// Package api serves the engine's state over HTTP and streams its events
// over WebSocket.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-ctp/internal/engine"
)

// EngineReader provides access to engine state and its trading calls.
type EngineReader interface {
	Status() engine.Status
	Ticks(instrumentID string) []engine.Tick
	Orders() []engine.Order
	Trades() []engine.Trade
	Positions() []engine.Position
	Pending() []engine.Pending
	Errors() []*engine.RspError
	InsertOrder(req engine.OrderRequest) (engine.Order, error)
	CancelOrder(key string) error
	Query(kind string) error
}

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Server is the REST API + WebSocket server.
type Server struct {
	engine   EngineReader
	hub      *Hub
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	mux      *http.ServeMux
	srv      *http.Server
	address  string
}

// Option configures a Server.
type Option func(*Server)

// WithGatherer exposes g on /metrics instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithHubBuffer sizes the WebSocket broadcast queue.
func WithHubBuffer(n int) Option {
	return func(s *Server) { s.hub = NewHub(s.logger, n) }
}

// NewServer creates an API server.
func NewServer(address string, eng EngineReader, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:   eng,
		hub:      NewHub(logger, 0),
		gatherer: prometheus.DefaultGatherer,
		logger:   logger,
		mux:      http.NewServeMux(),
		address:  address,
	}
	for _, o := range opts {
		o(s)
	}
	s.registerRoutes()
	return s
}

// SetEngine replaces the engine the handlers read from. It must be called
// before Run.
func (s *Server) SetEngine(eng EngineReader) {
	s.engine = eng
}

// HubRef returns the WebSocket hub for broadcasting.
func (s *Server) HubRef() *Hub {
	return s.hub
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/ticks/{instrument}", s.handleTicks)
	s.mux.HandleFunc("GET /api/orders", s.handleOrders)
	s.mux.HandleFunc("POST /api/orders", s.handleInsertOrder)
	s.mux.HandleFunc("DELETE /api/orders/{key}", s.handleCancelOrder)
	s.mux.HandleFunc("GET /api/trades", s.handleTrades)
	s.mux.HandleFunc("GET /api/positions", s.handlePositions)
	s.mux.HandleFunc("GET /api/pending", s.handlePending)
	s.mux.HandleFunc("GET /api/errors", s.handleErrors)
	s.mux.HandleFunc("POST /api/query/{kind}", s.handleQuery)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// Run starts the HTTP server and the WebSocket hub.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	s.srv = &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api_server_started", zap.String("address", s.address))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Ticks(r.PathValue("instrument")))
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Orders())
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Trades())
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Positions())
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Pending())
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.Errors())
}

func (s *Server) handleInsertOrder(w http.ResponseWriter, r *http.Request) {
	var req engine.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	order, err := s.engine.InsertOrder(req)
	if err != nil {
		s.fail(w, "api_order_failed", err)
		return
	}
	s.logger.Info("api_order",
		zap.String("key", order.Key),
		zap.String("instrument", req.InstrumentID),
		zap.String("direction", req.Direction),
	)
	writeData(w, http.StatusAccepted, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := s.engine.CancelOrder(key); err != nil {
		s.fail(w, "api_cancel_failed", err)
		return
	}
	s.logger.Info("api_cancel", zap.String("key", key))
	writeData(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Query(r.PathValue("kind")); err != nil {
		s.fail(w, "api_query_failed", err)
		return
	}
	writeData(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleUpgrade(w, r)
}

// fail maps an engine error onto an HTTP status.
func (s *Server) fail(w http.ResponseWriter, event string, err error) {
	status := http.StatusBadRequest
	var submit *engine.SubmitError
	switch {
	case errors.Is(err, engine.ErrNotReady):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrUnknownOrder):
		status = http.StatusNotFound
	case errors.As(err, &submit):
		status = http.StatusBadGateway
	}
	s.logger.Warn(event, zap.Int("status", status), zap.Error(err))
	writeError(w, status, err.Error())
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{Data: data, Timestamp: time.Now()})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Error: msg, Timestamp: time.Now()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
