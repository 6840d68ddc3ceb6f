package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dd0wney/taxigraph/pkg/routing"
	"github.com/dd0wney/taxigraph/pkg/schema"
	"github.com/dd0wney/taxigraph/pkg/store"
)

// errorStatus maps the error taxonomy onto HTTP statuses and stable
// machine-readable codes.
func errorStatus(err error) (int, string) {
	switch {
	case schema.IsViolation(err):
		return http.StatusUnprocessableEntity, "schema_violation"
	case errors.Is(err, store.ErrDanglingReference):
		return http.StatusConflict, "dangling_reference"
	case errors.Is(err, store.ErrCrossAirportEdge):
		return http.StatusConflict, "cross_airport_edge"
	case errors.Is(err, store.ErrUnknownNode):
		return http.StatusNotFound, "unknown_node"
	case errors.Is(err, store.ErrEdgeNotFound):
		return http.StatusNotFound, "edge_not_found"
	case errors.Is(err, routing.ErrNoRoute):
		return http.StatusNotFound, "no_route"
	case store.IsUnavailable(err):
		return http.StatusServiceUnavailable, "store_unavailable"
	}
	return http.StatusInternalServerError, "internal"
}

// handleNodes serves POST /nodes (propose) and GET /nodes?airport=.
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var node schema.Node
		if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
			s.respondError(w, http.StatusBadRequest, "bad_json", err)
			return
		}
		if err := s.service.ProposeNode(&node); err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusCreated, &node)

	case http.MethodGet:
		nodes, err := s.service.ListNodes(r.URL.Query().Get("airport"))
		if err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusOK, nodes)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleNode serves GET and DELETE for /nodes/{id}.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/nodes/")
	if id == "" {
		http.Error(w, "Node id required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		node, err := s.service.GetNode(id)
		if err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusOK, node)

	case http.MethodDelete:
		if err := s.service.RemoveNode(id); err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusOK, statusResponse{Status: "deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleEdges serves POST /edges (propose), GET /edges?airport=, and
// DELETE /edges?from=&to=.
func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req EdgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "bad_json", err)
			return
		}
		if err := s.service.ProposeEdge(req.FromID, req.ToID, req.Attrs(), req.IsBidirectional()); err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusCreated, statusResponse{Status: "created"})

	case http.MethodGet:
		edges, err := s.service.ListEdges(r.URL.Query().Get("airport"))
		if err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusOK, edges)

	case http.MethodDelete:
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		if from == "" || to == "" {
			http.Error(w, "from and to are required", http.StatusBadRequest)
			return
		}
		if err := s.service.RemoveEdge(from, to); err != nil {
			status, code := errorStatus(err)
			s.respondError(w, status, code, err)
			return
		}
		s.respondJSON(w, http.StatusOK, statusResponse{Status: "deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleBatch serves POST /batch: one construction pass of mutations,
// reporting per-index failures so the agent loop can retry just those.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var muts []store.Mutation
	if err := json.NewDecoder(r.Body).Decode(&muts); err != nil {
		s.respondError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	result, err := s.service.ApplyBatch(muts)
	if err != nil {
		status, code := errorStatus(err)
		s.respondError(w, status, code, err)
		return
	}

	type failureBody struct {
		Index int    `json:"index"`
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	body := struct {
		Applied  int           `json:"applied"`
		Failures []failureBody `json:"failures,omitempty"`
	}{Applied: result.Applied}
	for _, f := range result.Failures {
		_, code := errorStatus(f.Err)
		body.Failures = append(body.Failures, failureBody{Index: f.Index, Error: f.Err.Error(), Code: code})
	}

	status := http.StatusOK
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	s.respondJSON(w, status, body)
}

// handlePath serves GET /path?airport=&from=&to=.
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	airport, from, to := q.Get("airport"), q.Get("from"), q.Get("to")
	if airport == "" || from == "" || to == "" {
		http.Error(w, "airport, from, and to are required", http.StatusBadRequest)
		return
	}

	path, err := s.service.FindPath(airport, from, to)
	if err != nil {
		status, code := errorStatus(err)
		s.respondError(w, status, code, err)
		return
	}
	s.respondJSON(w, http.StatusOK, path)
}

// handleStats serves GET /stats?airport=.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.service.Stats(r.URL.Query().Get("airport"))
	if err != nil {
		status, code := errorStatus(err)
		s.respondError(w, status, code, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

// handleAirports serves GET /airports.
func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	airports, err := s.service.ListAirports()
	if err != nil {
		status, code := errorStatus(err)
		s.respondError(w, status, code, err)
		return
	}
	s.respondJSON(w, http.StatusOK, airports)
}

// handleValidate serves GET /validate?airport=.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	airport := r.URL.Query().Get("airport")
	if airport == "" {
		http.Error(w, "airport is required", http.StatusBadRequest)
		return
	}
	report, err := s.service.Validate(airport)
	if err != nil {
		status, code := errorStatus(err)
		s.respondError(w, status, code, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handleClear serves POST /clear?airport=. Omitting airport clears the
// entire store.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	airport := r.URL.Query().Get("airport")
	if err := s.service.Clear(airport); err != nil {
		status, code := errorStatus(err)
		s.respondError(w, status, code, err)
		return
	}
	s.respondJSON(w, http.StatusOK, statusResponse{Status: "cleared", Airport: airport})
}
