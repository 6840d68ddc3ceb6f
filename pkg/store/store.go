package store

import (
	"sort"
	"sync"

	"github.com/dd0wney/taxigraph/pkg/schema"
)

// Store is the airport-scoped CRUD contract the rest of the system
// depends on. It is passed explicitly to every operation so tests can
// substitute in-memory fakes for a live backing database.
type Store interface {
	// UpsertNode validates the node and idempotently replaces any
	// existing node with the same id. An id collision with a different
	// kind or airport is a schema violation: ids are immutable.
	UpsertNode(n *schema.Node) error
	// UpsertEdge creates or replaces the directed edge (fromID, toID, via).
	// Fails with ErrDanglingReference if either endpoint is absent and
	// ErrCrossAirportEdge if the endpoints' airports differ.
	UpsertEdge(fromID, toID string, attrs schema.EdgeAttrs) error
	// DeleteNode removes a node and every edge touching it. Corrections
	// are modeled as delete-then-recreate, never partial update.
	DeleteNode(id string) error
	// DeleteEdge removes the directed edge between two nodes.
	DeleteEdge(fromID, toID string) error

	GetNode(id string) (*schema.Node, error)
	// ListNodes returns the airport's nodes ordered by kind then name.
	ListNodes(airport string) ([]*schema.Node, error)
	// ListEdges returns the airport's edges ordered by (from, to).
	ListEdges(airport string) ([]*schema.Edge, error)
	// OutgoingEdges returns edges leaving the node, ordered by target id.
	OutgoingEdges(nodeID string) ([]*schema.Edge, error)
	// IncomingEdges returns edges arriving at the node, ordered by source id.
	IncomingEdges(nodeID string) ([]*schema.Edge, error)

	// Clear atomically deletes one airport's subgraph, or everything
	// when airport is empty. No reader observes a partially cleared graph.
	Clear(airport string) error
	// Stats returns node counts by kind and the edge count, optionally
	// scoped to one airport.
	Stats(airport string) (*Stats, error)
	// ListAirports returns the distinct airports present, sorted.
	ListAirports() ([]string, error)

	Close() error
}

// MemoryStore is the in-memory Store implementation. A single RWMutex
// guards all maps; airport isolation comes from the scoping key, not
// from per-airport locks, so rebuilding one airport can never corrupt
// another's data.
type MemoryStore struct {
	mu sync.RWMutex

	nodes          map[string]*schema.Node
	nodesByAirport map[string]map[string]struct{}
	outgoing       map[string][]*schema.Edge
	incoming       map[string][]*schema.Edge
	edgeCount      int

	closed bool
}

// NewMemoryStore creates an empty in-memory graph store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:          make(map[string]*schema.Node),
		nodesByAirport: make(map[string]map[string]struct{}),
		outgoing:       make(map[string][]*schema.Edge),
		incoming:       make(map[string][]*schema.Edge),
	}
}

// UpsertNode validates and stores a node, replacing any previous node
// with the same id.
func (s *MemoryStore) UpsertNode(n *schema.Node) error {
	if err := schema.ValidateNode(n); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailableError("UpsertNode")
	}

	if existing, ok := s.nodes[n.ID]; ok {
		if existing.Airport != n.Airport {
			return &schema.Violation{Field: "airport", Rule: "id immutable",
				Detail: "id " + n.ID + " already belongs to airport " + existing.Airport}
		}
		if existing.Kind != n.Kind {
			return &schema.Violation{Field: "kind", Rule: "id immutable",
				Detail: "id " + n.ID + " already has kind " + string(existing.Kind)}
		}
	}

	s.nodes[n.ID] = n.Clone()
	ids, ok := s.nodesByAirport[n.Airport]
	if !ok {
		ids = make(map[string]struct{})
		s.nodesByAirport[n.Airport] = ids
	}
	ids[n.ID] = struct{}{}
	return nil
}

// UpsertEdge creates or replaces a directed edge between existing nodes.
func (s *MemoryStore) UpsertEdge(fromID, toID string, attrs schema.EdgeAttrs) error {
	if err := schema.ValidateEdgeAttrs(&attrs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailableError("UpsertEdge")
	}

	from, ok := s.nodes[fromID]
	if !ok {
		return edgeError("UpsertEdge", ErrDanglingReference, "from node %s does not exist", fromID)
	}
	to, ok := s.nodes[toID]
	if !ok {
		return edgeError("UpsertEdge", ErrDanglingReference, "to node %s does not exist", toID)
	}
	if from.Airport != to.Airport {
		return edgeError("UpsertEdge", ErrCrossAirportEdge,
			"%s is at %s but %s is at %s", fromID, from.Airport, toID, to.Airport)
	}

	edge := &schema.Edge{FromID: fromID, ToID: toID, EdgeAttrs: attrs}

	// Replace an existing edge over the same surface, append otherwise.
	replaced := false
	for i, e := range s.outgoing[fromID] {
		if e.ToID == toID && e.Via == attrs.Via {
			s.outgoing[fromID][i] = edge
			replaced = true
			break
		}
	}
	if replaced {
		for i, e := range s.incoming[toID] {
			if e.FromID == fromID && e.Via == attrs.Via {
				s.incoming[toID][i] = edge
				break
			}
		}
		return nil
	}

	s.outgoing[fromID] = append(s.outgoing[fromID], edge)
	s.incoming[toID] = append(s.incoming[toID], edge)
	s.edgeCount++
	return nil
}

// DeleteNode removes a node and all edges touching it.
func (s *MemoryStore) DeleteNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailableError("DeleteNode")
	}

	node, ok := s.nodes[id]
	if !ok {
		return nodeError("DeleteNode", id, ErrUnknownNode)
	}

	for _, e := range s.outgoing[id] {
		s.incoming[e.ToID] = removeEdges(s.incoming[e.ToID], func(c *schema.Edge) bool {
			return c.FromID == id
		})
		s.edgeCount--
	}
	for _, e := range s.incoming[id] {
		s.outgoing[e.FromID] = removeEdges(s.outgoing[e.FromID], func(c *schema.Edge) bool {
			return c.ToID == id
		})
		s.edgeCount--
	}
	delete(s.outgoing, id)
	delete(s.incoming, id)
	delete(s.nodes, id)
	delete(s.nodesByAirport[node.Airport], id)
	if len(s.nodesByAirport[node.Airport]) == 0 {
		delete(s.nodesByAirport, node.Airport)
	}
	return nil
}

// DeleteEdge removes every directed edge from fromID to toID.
func (s *MemoryStore) DeleteEdge(fromID, toID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailableError("DeleteEdge")
	}

	before := len(s.outgoing[fromID])
	s.outgoing[fromID] = removeEdges(s.outgoing[fromID], func(c *schema.Edge) bool {
		return c.ToID == toID
	})
	removed := before - len(s.outgoing[fromID])
	if removed == 0 {
		return edgeError("DeleteEdge", ErrEdgeNotFound, "%s -> %s", fromID, toID)
	}
	s.incoming[toID] = removeEdges(s.incoming[toID], func(c *schema.Edge) bool {
		return c.FromID == fromID
	})
	s.edgeCount -= removed
	return nil
}

// GetNode returns a copy of the node, or ErrUnknownNode.
func (s *MemoryStore) GetNode(id string) (*schema.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("GetNode")
	}

	node, ok := s.nodes[id]
	if !ok {
		return nil, nodeError("GetNode", id, ErrUnknownNode)
	}
	return node.Clone(), nil
}

// ListNodes returns the airport's nodes ordered by kind then name.
// An empty airport lists every node, ordered by airport first.
func (s *MemoryStore) ListNodes(airport string) ([]*schema.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("ListNodes")
	}

	var nodes []*schema.Node
	if airport == "" {
		for _, n := range s.nodes {
			nodes = append(nodes, n.Clone())
		}
	} else {
		for id := range s.nodesByAirport[airport] {
			nodes = append(nodes, s.nodes[id].Clone())
		}
	}

	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Airport != b.Airport {
			return a.Airport < b.Airport
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})
	return nodes, nil
}

// ListEdges returns the airport's edges ordered by (from, to, via).
func (s *MemoryStore) ListEdges(airport string) ([]*schema.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("ListEdges")
	}

	var edges []*schema.Edge
	for fromID, out := range s.outgoing {
		if airport != "" {
			if n, ok := s.nodes[fromID]; !ok || n.Airport != airport {
				continue
			}
		}
		for _, e := range out {
			edges = append(edges, e.Clone())
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.FromID != b.FromID {
			return a.FromID < b.FromID
		}
		if a.ToID != b.ToID {
			return a.ToID < b.ToID
		}
		return a.Via < b.Via
	})
	return edges, nil
}

// OutgoingEdges returns edges leaving the node, ordered by target id so
// traversal order is deterministic.
func (s *MemoryStore) OutgoingEdges(nodeID string) ([]*schema.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("OutgoingEdges")
	}
	if _, ok := s.nodes[nodeID]; !ok {
		return nil, nodeError("OutgoingEdges", nodeID, ErrUnknownNode)
	}

	edges := make([]*schema.Edge, 0, len(s.outgoing[nodeID]))
	for _, e := range s.outgoing[nodeID] {
		edges = append(edges, e.Clone())
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ToID < edges[j].ToID })
	return edges, nil
}

// IncomingEdges returns edges arriving at the node, ordered by source id.
func (s *MemoryStore) IncomingEdges(nodeID string) ([]*schema.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("IncomingEdges")
	}
	if _, ok := s.nodes[nodeID]; !ok {
		return nil, nodeError("IncomingEdges", nodeID, ErrUnknownNode)
	}

	edges := make([]*schema.Edge, 0, len(s.incoming[nodeID]))
	for _, e := range s.incoming[nodeID] {
		edges = append(edges, e.Clone())
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].FromID < edges[j].FromID })
	return edges, nil
}

// Clear deletes one airport's subgraph, or everything when airport is
// empty. It holds the write lock for the whole sweep so readers see
// either the old graph or the emptied one, never an intermediate state.
func (s *MemoryStore) Clear(airport string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailableError("Clear")
	}

	if airport == "" {
		s.nodes = make(map[string]*schema.Node)
		s.nodesByAirport = make(map[string]map[string]struct{})
		s.outgoing = make(map[string][]*schema.Edge)
		s.incoming = make(map[string][]*schema.Edge)
		s.edgeCount = 0
		return nil
	}

	for id := range s.nodesByAirport[airport] {
		// Same-airport invariant means all edges of these nodes stay
		// inside the subgraph being dropped.
		s.edgeCount -= len(s.outgoing[id])
		delete(s.outgoing, id)
		delete(s.incoming, id)
		delete(s.nodes, id)
	}
	delete(s.nodesByAirport, airport)
	return nil
}

// Stats returns node counts by kind and the edge count.
func (s *MemoryStore) Stats(airport string) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("Stats")
	}

	stats := &Stats{
		Airport:     airport,
		NodesByKind: make(map[schema.NodeKind]int),
	}
	for _, n := range s.nodes {
		if airport != "" && n.Airport != airport {
			continue
		}
		stats.Nodes++
		stats.NodesByKind[n.Kind]++
	}
	for fromID, out := range s.outgoing {
		if airport != "" {
			if n, ok := s.nodes[fromID]; !ok || n.Airport != airport {
				continue
			}
		}
		stats.Edges += len(out)
	}
	return stats, nil
}

// ListAirports returns the distinct airports present, sorted.
func (s *MemoryStore) ListAirports() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, unavailableError("ListAirports")
	}

	airports := make([]string, 0, len(s.nodesByAirport))
	for a := range s.nodesByAirport {
		airports = append(airports, a)
	}
	sort.Strings(airports)
	return airports, nil
}

// Close marks the store unavailable. Subsequent calls fail with
// ErrStoreUnavailable.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func removeEdges(edges []*schema.Edge, match func(*schema.Edge) bool) []*schema.Edge {
	kept := edges[:0]
	for _, e := range edges {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	return kept
}
