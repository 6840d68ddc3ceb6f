package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dd0wney/taxigraph/pkg/graph"
	"github.com/dd0wney/taxigraph/pkg/logging"
	"github.com/dd0wney/taxigraph/pkg/metrics"
	"github.com/dd0wney/taxigraph/pkg/schema"
	"github.com/dd0wney/taxigraph/pkg/store"
)

// newTestServer builds a server over an empty in-memory store
func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.NewMemoryStore()
	service := graph.NewService(st, graph.WithLogger(logging.NopLogger{}))
	return NewServer(service, ":0", logging.NopLogger{}, metrics.NewRegistry())
}

// do runs one request through the full middleware chain
func do(s *Server, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

// nodeBody builds a node request payload
func nodeBody(airport string, kind schema.NodeKind, name string) map[string]any {
	body := map[string]any{
		"id":       schema.NodeID(airport, kind, name),
		"airport":  airport,
		"kind":     kind,
		"name":     name,
		"position": map[string]float64{"x": 50, "y": 50},
	}
	switch kind {
	case schema.KindRunwayEnd:
		body["runwayEnd"] = map[string]any{"heading": 270, "runwayId": "9_27"}
	case schema.KindHoldShort:
		body["holdShort"] = map[string]any{"runway": "27", "taxiway": "A"}
	case schema.KindTaxiwayIntersection:
		body["intersection"] = map[string]any{"taxiways": []string{"A"}}
	}
	return body
}

// TestHandleNodes_CreateAndGet tests the node lifecycle over HTTP
func TestHandleNodes_CreateAndGet(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header on response")
	}

	rec = do(s, http.MethodGet, "/nodes/KDPA_fbo_Atlantic", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var node schema.Node
	if err := json.Unmarshal(rec.Body.Bytes(), &node); err != nil {
		t.Fatalf("Failed to decode node: %v", err)
	}
	if node.Name != "Atlantic" {
		t.Errorf("Expected node name Atlantic, got %q", node.Name)
	}
}

// TestHandleNodes_SchemaViolation tests the 422 mapping
func TestHandleNodes_SchemaViolation(t *testing.T) {
	s := newTestServer(t)

	body := nodeBody("KDPA", schema.KindFBO, "Atlantic")
	body["airport"] = "toolong5"
	rec := do(s, http.MethodPost, "/nodes", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "schema_violation" {
		t.Errorf("Expected code schema_violation, got %q", resp.Code)
	}
}

// TestHandleNode_NotFound tests the 404 mapping
func TestHandleNode_NotFound(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodGet, "/nodes/KDPA_fbo_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

// TestHandleEdges_DanglingConflict tests the 409 mapping for dangling refs
func TestHandleEdges_DanglingConflict(t *testing.T) {
	s := newTestServer(t)
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))

	edge := map[string]any{
		"fromId": "KDPA_fbo_Atlantic", "toId": "KDPA_twy_missing",
		"via": "A", "distance": 2, "direction": "E",
	}
	rec := do(s, http.MethodPost, "/edges", edge)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "dangling_reference" {
		t.Errorf("Expected code dangling_reference, got %q", resp.Code)
	}
}

// TestHandleEdges_BidirectionalDefault tests that an edge request stores
// the reverse direction too
func TestHandleEdges_BidirectionalDefault(t *testing.T) {
	s := newTestServer(t)
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindTerminal, "Main"))

	edge := map[string]any{
		"fromId": "KDPA_fbo_Atlantic", "toId": "KDPA_terminal_Main",
		"via": "A", "distance": 2, "direction": "E",
	}
	rec := do(s, http.MethodPost, "/edges", edge)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(s, http.MethodGet, "/edges?airport=KDPA", nil)
	var edges []schema.Edge
	if err := json.Unmarshal(rec.Body.Bytes(), &edges); err != nil {
		t.Fatalf("Failed to decode edges: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("Expected 2 directed edges, got %d", len(edges))
	}
	if edges[1].Direction != edges[0].Direction.Opposite() {
		t.Errorf("Expected opposite directions, got %s and %s", edges[0].Direction, edges[1].Direction)
	}
}

// TestHandlePath_EndToEnd tests a route query over HTTP
func TestHandlePath_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindHoldShort, "A hold 27"))
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindRunwayEnd, "27"))
	do(s, http.MethodPost, "/edges", map[string]any{
		"fromId": "KDPA_fbo_Atlantic", "toId": "KDPA_hold_A_hold_27",
		"via": "A", "distance": 3, "direction": "E",
	})
	do(s, http.MethodPost, "/edges", map[string]any{
		"fromId": "KDPA_hold_A_hold_27", "toId": "KDPA_rwy_27",
		"via": "A", "distance": 1, "direction": "E", "requiresHold": true,
	})

	rec := do(s, http.MethodGet, "/path?airport=KDPA&from=KDPA_fbo_Atlantic&to=KDPA_rwy_27", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var path struct {
		NodeIDs       []string `json:"nodeIds"`
		Holds         []bool   `json:"holds"`
		TotalDistance float64  `json:"totalDistance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &path); err != nil {
		t.Fatalf("Failed to decode path: %v", err)
	}
	if len(path.NodeIDs) != 3 {
		t.Fatalf("Expected 3-node route, got %v", path.NodeIDs)
	}
	if !path.Holds[2] {
		t.Errorf("Expected hold on final hop, got %v", path.Holds)
	}
	if path.TotalDistance != 4 {
		t.Errorf("Expected distance 4, got %v", path.TotalDistance)
	}
}

// TestHandlePath_NoRoute tests the no_route 404 mapping
func TestHandlePath_NoRoute(t *testing.T) {
	s := newTestServer(t)
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindTerminal, "Main"))

	rec := do(s, http.MethodGet, "/path?airport=KDPA&from=KDPA_fbo_Atlantic&to=KDPA_terminal_Main", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "no_route" {
		t.Errorf("Expected code no_route, got %q", resp.Code)
	}
}

// TestHandleBatch_PartialFailure tests the 207 multi-status response
func TestHandleBatch_PartialFailure(t *testing.T) {
	s := newTestServer(t)

	bad := nodeBody("KDPA", schema.KindTerminal, "Main")
	bad["airport"] = "bad"
	muts := []map[string]any{
		{"Node": nodeBody("KDPA", schema.KindFBO, "Atlantic")},
		{"Node": bad},
	}
	rec := do(s, http.MethodPost, "/batch", muts)
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("Expected 207, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Applied  int `json:"applied"`
		Failures []struct {
			Index int    `json:"index"`
			Code  string `json:"code"`
		} `json:"failures"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode batch result: %v", err)
	}
	if result.Applied != 1 {
		t.Errorf("Expected 1 applied, got %d", result.Applied)
	}
	if len(result.Failures) != 1 || result.Failures[0].Index != 1 {
		t.Fatalf("Expected failure at index 1, got %+v", result.Failures)
	}
	if result.Failures[0].Code != "schema_violation" {
		t.Errorf("Expected schema_violation code, got %q", result.Failures[0].Code)
	}
}

// TestHandleValidate_Findings tests the validation endpoint
func TestHandleValidate_Findings(t *testing.T) {
	s := newTestServer(t)
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))

	rec := do(s, http.MethodGet, "/validate?airport=KDPA", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var report struct {
		Airport  string `json:"airport"`
		Findings []struct {
			Code string `json:"code"`
		} `json:"findings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(report.Findings) == 0 {
		t.Error("Expected the isolated FBO to be flagged")
	}
}

// TestHandleClear_Scoped tests airport-scoped clearing over HTTP
func TestHandleClear_Scoped(t *testing.T) {
	s := newTestServer(t)
	do(s, http.MethodPost, "/nodes", nodeBody("KDPA", schema.KindFBO, "Atlantic"))
	do(s, http.MethodPost, "/nodes", nodeBody("KORD", schema.KindTerminal, "T5"))

	rec := do(s, http.MethodPost, "/clear?airport=KDPA", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = do(s, http.MethodGet, "/airports", nil)
	var airports []string
	json.Unmarshal(rec.Body.Bytes(), &airports)
	if len(airports) != 1 || airports[0] != "KORD" {
		t.Errorf("Expected only KORD to remain, got %v", airports)
	}
}

// TestHandleHealth tests the liveness endpoint
func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

// TestHandleNodes_MethodNotAllowed tests method guarding
func TestHandleNodes_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodPut, "/nodes", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, got %d", rec.Code)
	}
}
