package store

import (
	"testing"

	"github.com/dd0wney/taxigraph/pkg/schema"
)

// TestApplyBatch_PartialFailure tests that invalid mutations are reported
// by index while the valid remainder commits
func TestApplyBatch_PartialFailure(t *testing.T) {
	s := NewMemoryStore()

	good := testNode("KDPA", schema.KindFBO, "Atlantic")
	bad := testNode("KDPA", schema.KindTerminal, "Main")
	bad.Airport = "toolong5"
	target := testNode("KDPA", schema.KindRamp, "North")

	muts := []Mutation{
		{Node: good},
		{Node: bad},
		{Node: target},
		{Edge: &schema.Edge{FromID: good.ID, ToID: target.ID,
			EdgeAttrs: testEdgeAttrs("ramp", 1)}},
		{Edge: &schema.Edge{FromID: good.ID, ToID: "KDPA_twy_missing",
			EdgeAttrs: testEdgeAttrs("A", 2)}},
	}

	result, err := s.ApplyBatch(muts)
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	if result.Applied != 3 {
		t.Errorf("Expected 3 applied, got %d", result.Applied)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(result.Failures))
	}
	if result.Failures[0].Index != 1 || result.Failures[1].Index != 4 {
		t.Errorf("Expected failures at indexes 1 and 4, got %d and %d",
			result.Failures[0].Index, result.Failures[1].Index)
	}
	if result.Ok() {
		t.Error("Expected Ok() to be false with failures present")
	}

	// Committed mutations are queryable.
	if _, err := s.GetNode(good.ID); err != nil {
		t.Errorf("Expected committed node present, got %v", err)
	}
	edges, _ := s.OutgoingEdges(good.ID)
	if len(edges) != 1 {
		t.Errorf("Expected 1 committed edge, got %d", len(edges))
	}
}

// TestApplyBatch_EmptyMutation tests that a mutation with neither node nor
// edge is a failure, not a silent skip
func TestApplyBatch_EmptyMutation(t *testing.T) {
	s := NewMemoryStore()
	result, err := s.ApplyBatch([]Mutation{{}})
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	if len(result.Failures) != 1 {
		t.Errorf("Expected 1 failure for empty mutation, got %d", len(result.Failures))
	}
}

// TestApplyBatch_AbortsOnUnavailable tests that infrastructure failures
// stop the pass instead of being collected
func TestApplyBatch_AbortsOnUnavailable(t *testing.T) {
	s := NewMemoryStore()
	s.Close()

	result, err := s.ApplyBatch([]Mutation{
		{Node: testNode("KDPA", schema.KindFBO, "Atlantic")},
		{Node: testNode("KDPA", schema.KindTerminal, "Main")},
	})
	if !IsUnavailable(err) {
		t.Fatalf("Expected unavailable error, got %v", err)
	}
	if result.Applied != 0 {
		t.Errorf("Expected 0 applied, got %d", result.Applied)
	}
}
