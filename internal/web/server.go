package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/truckfest/internal/metrics"
	"github.com/vbonduro/truckfest/internal/service"
)

type Server struct {
	planner          *service.Planner
	metrics          *metrics.Metrics
	restockThreshold int
	mux              *http.ServeMux
	logger           *slog.Logger
}

// NewServer builds the JSON API over planner. m may be nil, in which case
// requests are not instrumented and /metrics is not served.
func NewServer(planner *service.Planner, m *metrics.Metrics, restockThreshold int, logger *slog.Logger) *Server {
	s := &Server{
		planner:          planner,
		metrics:          m,
		restockThreshold: restockThreshold,
		mux:              http.NewServeMux(),
		logger:           logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/overview", s.handleOverview)
	s.mux.HandleFunc("GET /api/catalog", s.handleCatalog)

	s.mux.HandleFunc("GET /api/trucks", s.handleListTrucks)
	s.mux.HandleFunc("POST /api/trucks", handleCreate(s, s.planner.SaveTruck))
	s.mux.HandleFunc("GET /api/trucks/{id}", handleGet(s, s.planner.Truck))
	s.mux.HandleFunc("PUT /api/trucks/{id}", handleUpdate(s, s.planner.UpdateTruck))
	s.mux.HandleFunc("DELETE /api/trucks/{id}", handleDelete(s, s.planner.DeleteTruck))
	s.mux.HandleFunc("GET /api/trucks/{id}/image", s.handleGetTruckImage)
	s.mux.HandleFunc("PUT /api/trucks/{id}/image", handleSetImage(s, s.planner.SetTruckImage))
	s.mux.HandleFunc("DELETE /api/trucks/{id}/image", handleClearImage(s, s.planner.SetTruckImage))

	s.mux.HandleFunc("GET /api/events", s.handleListEvents)
	s.mux.HandleFunc("POST /api/events", handleCreate(s, s.planner.SaveEvent))
	s.mux.HandleFunc("GET /api/events/{id}", handleGet(s, s.planner.Event))
	s.mux.HandleFunc("PUT /api/events/{id}", handleUpdate(s, s.planner.UpdateEvent))
	s.mux.HandleFunc("DELETE /api/events/{id}", handleDelete(s, s.planner.DeleteEvent))
	s.mux.HandleFunc("GET /api/events/{id}/poster", s.handleGetEventPoster)
	s.mux.HandleFunc("PUT /api/events/{id}/poster", handleSetImage(s, s.planner.SetEventPoster))
	s.mux.HandleFunc("DELETE /api/events/{id}/poster", handleClearImage(s, s.planner.SetEventPoster))

	s.mux.HandleFunc("GET /api/inventories", s.handleListInventories)
	s.mux.HandleFunc("GET /api/inventories/restock", s.handleRestock)
	s.mux.HandleFunc("GET /api/inventories/expiring", s.handleExpiring)
	s.mux.HandleFunc("POST /api/inventories", handleCreate(s, s.planner.SaveInventory))
	s.mux.HandleFunc("GET /api/inventories/{id}", handleGet(s, s.planner.Inventory))
	s.mux.HandleFunc("PUT /api/inventories/{id}", handleUpdate(s, s.planner.UpdateInventory))
	s.mux.HandleFunc("DELETE /api/inventories/{id}", handleDelete(s, s.planner.DeleteInventory))

	s.mux.HandleFunc("GET /api/plans", s.handleListPlans)
	s.mux.HandleFunc("POST /api/plans", handleCreate(s, s.planner.SavePlan))
	s.mux.HandleFunc("GET /api/plans/{id}", handleGet(s, s.planner.Plan))
	s.mux.HandleFunc("PUT /api/plans/{id}", handleUpdate(s, s.planner.UpdatePlan))
	s.mux.HandleFunc("DELETE /api/plans/{id}", handleDelete(s, s.planner.DeletePlan))

	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs each request and reports it to m. The route label is
// the matched mux pattern, which the mux stores on r before calling the
// handler.
func requestLogger(logger *slog.Logger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(r.Method, route, rec.status, elapsed)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, s.metrics, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
