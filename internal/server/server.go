package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"log/slog"

	"orderflow/internal/api"
	"orderflow/internal/config"
	"orderflow/internal/logging"
	"orderflow/internal/orders"
	"orderflow/internal/workflow"
)

// Server exposes the order API over HTTP.
type Server struct {
	bind     string
	token    string
	logger   *slog.Logger
	service  *api.OrderService
	store    *orders.Store
	lockPath string

	listener net.Listener
	server   *http.Server
}

// New builds a server around the workflow manager. Returns nil when the
// config leaves the bind address empty.
func New(cfg *config.Config, manager *workflow.Manager, store *orders.Store, logger *slog.Logger) *Server {
	if cfg == nil || manager == nil {
		return nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil
	}

	srv := &Server{
		bind:    bind,
		token:   cfg.Paths.APIToken,
		logger:  logging.NewComponentLogger(logger, "api-server"),
		service: api.NewOrderService(manager),
		store:   store,
	}

	srv.server = &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// SetLockPath records the serve lock location for status reporting.
func (s *Server) SetLockPath(path string) {
	if s != nil {
		s.lockPath = path
	}
}

// Handler returns the routed HTTP handler, with bearer auth applied
// when a token is configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.auth(s.handleStatus))
	mux.HandleFunc("/api/stages", s.auth(s.handleStages))
	mux.HandleFunc("/api/dashboard", s.auth(s.handleDashboard))
	mux.HandleFunc("/api/orders", s.auth(s.handleOrders))
	mux.HandleFunc("/api/orders/", s.auth(s.handleOrder))
	return mux
}

// Start listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address once Start has succeeded.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := api.ServiceStatus{
		Running:      true,
		PID:          os.Getpid(),
		LockFilePath: s.lockPath,
	}
	if s.store != nil {
		status.OrderDBPath = s.store.Path()
		if health, err := s.store.CheckHealth(r.Context()); err == nil {
			status.DatabaseHealth = health.DatabaseReadable && health.IntegrityCheck
			status.OrderCount = health.TotalOrders
		}
	}
	if dash, err := s.service.Dashboard(r.Context()); err == nil {
		status.Buckets = dash.Counts
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.service.Catalog())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp, err := s.service.Dashboard(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		views, err := s.service.Query(r.Context(), queryFromURL(r))
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.OrderListResponse{Orders: views})
	case http.MethodPost:
		var req api.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		view, err := s.service.Create(r.Context(), req)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, api.OrderResponse{Order: view})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		s.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		view, err := s.service.Describe(r.Context(), id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.OrderResponse{Order: view})
	case action == "transition" && r.Method == http.MethodPost:
		var req api.TransitionOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		view, err := s.service.Transition(r.Context(), id, req)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.OrderResponse{Order: view})
	case action == "":
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	default:
		s.writeError(w, http.StatusNotFound, "unknown order action")
	}
}

// queryFromURL maps query parameters onto the filter request. The
// boolean flags accept true/false and stay unset otherwise.
func queryFromURL(r *http.Request) api.QueryRequest {
	q := r.URL.Query()
	req := api.QueryRequest{
		Text:             q.Get("text"),
		AssignedEmployee: q.Get("assignedEmployee"),
		SalesOwner:       q.Get("salesOwner"),
		Designer:         q.Get("designer"),
		PaymentStatus:    q.Get("paymentStatus"),
		DeliveryChannel:  q.Get("deliveryChannel"),
		Bucket:           q.Get("bucket"),
	}
	req.WantsEngraving = parseBoolParam(q.Get("wantsEngravingTag"))
	req.WantsRibbon = parseBoolParam(q.Get("wantsRibbon"))
	return req
}

func parseBoolParam(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}

// writeDomainError maps the order error kinds onto HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orders.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrInvalidTransition):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, orders.ErrConflict):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
