package store

import (
	"github.com/dd0wney/taxigraph/pkg/schema"
)

// Mutation is one graph-construction request from the agent loop:
// exactly one of Node or Edge is set.
type Mutation struct {
	Node *schema.Node
	Edge *schema.Edge
}

// MutationFailure records which mutation in a batch was rejected and why,
// so the caller can retry just that one.
type MutationFailure struct {
	Index int
	Err   error
}

// BatchResult reports the outcome of one construction pass.
type BatchResult struct {
	Applied  int
	Failures []MutationFailure
}

// Ok reports whether every mutation in the batch committed.
func (r *BatchResult) Ok() bool {
	return len(r.Failures) == 0
}

// ApplyBatch applies one construction pass of mutations in order.
// Mutations that fail validation are collected and reported by index;
// the valid remainder still commits, so a partial failure never leaves
// the caller guessing which requests took effect.
func (s *MemoryStore) ApplyBatch(muts []Mutation) (*BatchResult, error) {
	result := &BatchResult{}

	for i, m := range muts {
		var err error
		switch {
		case m.Node != nil:
			err = s.UpsertNode(m.Node)
		case m.Edge != nil:
			err = s.UpsertEdge(m.Edge.FromID, m.Edge.ToID, m.Edge.EdgeAttrs)
		default:
			err = edgeError("ApplyBatch", ErrDanglingReference, "mutation %d has neither node nor edge", i)
		}

		if err != nil {
			if IsUnavailable(err) {
				return result, err
			}
			result.Failures = append(result.Failures, MutationFailure{Index: i, Err: err})
			continue
		}
		result.Applied++
	}

	return result, nil
}
