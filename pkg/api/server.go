package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dd0wney/taxigraph/pkg/graph"
	"github.com/dd0wney/taxigraph/pkg/graphql"
	"github.com/dd0wney/taxigraph/pkg/logging"
	"github.com/dd0wney/taxigraph/pkg/metrics"
)

// Server exposes the mutation, query, validation, and admin interfaces
// over HTTP JSON, plus a read-only GraphQL endpoint.
type Server struct {
	service *graph.Service
	logger  logging.Logger
	metrics *metrics.Registry

	httpServer *http.Server
}

// NewServer creates an API server over the service.
func NewServer(service *graph.Service, addr string, logger logging.Logger, reg *metrics.Registry) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		metrics: reg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	if reg != nil {
		mux.Handle("/metrics", reg.Handler())
	}

	// Mutation interface (consumed by the agent loop)
	mux.HandleFunc("/nodes", s.handleNodes)
	mux.HandleFunc("/nodes/", s.handleNode) // /nodes/{id}
	mux.HandleFunc("/edges", s.handleEdges)
	mux.HandleFunc("/batch", s.handleBatch)

	// Query interface
	mux.HandleFunc("/path", s.handlePath)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/airports", s.handleAirports)

	// Validation interface
	mux.HandleFunc("/validate", s.handleValidate)

	// Admin pass-throughs
	mux.HandleFunc("/clear", s.handleClear)

	// GraphQL query endpoint
	schema, err := graphql.BuildSchema(service)
	if err != nil {
		logger.Error("graphql schema build failed", logging.Error(err))
	} else {
		mux.Handle("/graphql", graphql.NewHandler(schema))
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.requestIDMiddleware(s.loggingMiddleware(s.panicRecoveryMiddleware(mux))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins serving and blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.logger.Info("api server starting", logging.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("api server stopping")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code string, err error) {
	s.respondJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
