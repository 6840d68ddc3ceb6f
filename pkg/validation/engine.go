package validation

import (
	"sort"

	"github.com/dd0wney/taxigraph/pkg/schema"
	"github.com/dd0wney/taxigraph/pkg/store"
)

// graphView is one airport's subgraph loaded once and shared by every
// check, so a validation run reads the store exactly twice.
type graphView struct {
	airport string
	nodes   []*schema.Node
	edges   []*schema.Edge
	byID    map[string]*schema.Node
	// adjacency ignores edge direction: structural checks care about
	// whether segments exist, not which way they were recorded.
	neighbors map[string][]string
}

// Validate runs the full battery of structural checks over one airport's
// subgraph and reports every defect together. The result is a structured
// report, never a bare pass/fail, because the agent loop uses individual
// findings to drive targeted correction passes.
func Validate(s store.Store, airport string) (*Report, error) {
	nodes, err := s.ListNodes(airport)
	if err != nil {
		return nil, err
	}
	edges, err := s.ListEdges(airport)
	if err != nil {
		return nil, err
	}

	view := &graphView{
		airport:   airport,
		nodes:     nodes,
		edges:     edges,
		byID:      make(map[string]*schema.Node, len(nodes)),
		neighbors: make(map[string][]string),
	}
	for _, n := range nodes {
		view.byID[n.ID] = n
	}
	for _, e := range edges {
		view.neighbors[e.FromID] = append(view.neighbors[e.FromID], e.ToID)
		view.neighbors[e.ToID] = append(view.neighbors[e.ToID], e.FromID)
	}

	report := &Report{Airport: airport}
	checkConnectivity(view, report)
	checkDanglingHoldReferences(view, report)
	checkOrphanHoldShorts(view, report)
	checkDuplicatePositions(view, report)
	checkRunwayPairing(view, report)
	checkIntersectionDegree(view, report)
	checkFacilityConnections(view, report)
	return report, nil
}

// sortedIDs returns the view's node ids in lexical order so findings are
// reproducible across runs.
func (v *graphView) sortedIDs() []string {
	ids := make([]string, 0, len(v.byID))
	for id := range v.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (v *graphView) degree(id string) int {
	return len(v.neighbors[id])
}
