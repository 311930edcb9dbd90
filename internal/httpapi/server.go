// Package httpapi exposes the order engine and product CRUD over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/db"
	"github.com/buildtall-systems/stockroom/internal/engine"
	"github.com/buildtall-systems/stockroom/internal/fsm"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	store  *db.DB
	engine *engine.Engine
	stock  *fsm.StockStateMachine
	logger *zap.Logger
}

func New(store *db.DB, eng *engine.Engine, logger *zap.Logger) *Server {
	return &Server{
		store:  store,
		engine: eng,
		stock:  fsm.NewStockStateMachine(),
		logger: logger,
	}
}

// Router builds the chi router with the service's middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.requestLogger)

	r.Post("/products", s.createProduct)
	r.Put("/products/{productID}", s.updateProduct)
	r.Post("/orders/{orderID}/processOrder", s.processOrder)
	r.Get("/healthz", s.health)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
