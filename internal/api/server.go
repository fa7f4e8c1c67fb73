// Package api exposes the decoder over HTTP. It only moves bytes: uploads
// go to replay.Decode, results come back as JSON, and optionally a summary
// row lands in the decode history.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"repdec/internal/metrics"
	"repdec/internal/store"
)

// Server represents the REST API server
type Server struct {
	addr    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. history may be nil, in which
// case the history endpoints respond 404 and decodes are not recorded.
func NewServer(addr string, maxUpload int64, history *store.History) *Server {
	handler := NewHandler(maxUpload, history)

	return &Server{
		addr:    addr,
		handler: handler,
		server: &http.Server{
			Addr:    addr,
			Handler: newRouter(handler),
		},
	}
}

func newRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware)

	// Health check and metrics
	router.HandleFunc("/healthz", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", metrics.Global().Handler()).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/replays", handler.DecodeReplay).Methods("POST")
	api.HandleFunc("/history", handler.ListHistory).Methods("GET")
	api.HandleFunc("/history/{id}", handler.GetHistory).Methods("GET")

	return router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
