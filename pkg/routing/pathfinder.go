package routing

import (
	"container/heap"

	"github.com/dd0wney/taxigraph/pkg/schema"
	"github.com/dd0wney/taxigraph/pkg/store"
)

// FindPath computes the lowest-total-distance route between two nodes of
// one airport using Dijkstra's algorithm over the stored directed edges,
// with edge weight = distance. Ties on total distance prefer the path
// with fewer requires_hold crossings, then the path discovered first
// under lexical node-id visitation order, so identical graphs always
// produce identical routes.
//
// A missing start or end node, or one scoped to a different airport,
// fails with store.ErrUnknownNode. A completed search with no route
// fails with ErrNoRoute.
func FindPath(s store.Store, airport, startID, endID string) (*Path, error) {
	startNode, err := scopedNode(s, airport, "FindPath", startID)
	if err != nil {
		return nil, err
	}
	endNode, err := scopedNode(s, airport, "FindPath", endID)
	if err != nil {
		return nil, err
	}

	if startID == endID {
		// You do not "arrive" at your own start, so the single hold
		// flag is false and the distance is zero.
		return &Path{
			Airport:   airport,
			NodeIDs:   []string{startID},
			NodeNames: []string{startNode.Name},
			Vias:      []string{},
			Holds:     []bool{false},
		}, nil
	}

	type nodeState struct {
		dist    float64
		holds   int
		prev    *schema.Edge
		settled bool
	}
	states := map[string]*nodeState{
		startID: {},
	}

	pq := &costQueue{{id: startID}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(costItem)
		state := states[current.id]
		if state.settled {
			continue // stale queue entry from lazy decrease-key
		}
		state.settled = true

		if current.id == endID {
			return reconstruct(airport, s, endNode, states[endID].dist, func(id string) *schema.Edge {
				return states[id].prev
			})
		}

		edges, err := s.OutgoingEdges(current.id)
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			nextDist := state.dist + edge.Distance
			nextHolds := state.holds
			if edge.RequiresHold {
				nextHolds++
			}

			next, seen := states[edge.ToID]
			if !seen {
				states[edge.ToID] = &nodeState{dist: nextDist, holds: nextHolds, prev: edge}
				heap.Push(pq, costItem{id: edge.ToID, dist: nextDist, holds: nextHolds})
				continue
			}
			if next.settled {
				continue
			}
			// Relax on strictly lower distance, or equal distance with
			// fewer runway crossings. Equal on both keeps the first
			// discovery, which is deterministic because OutgoingEdges
			// is ordered by target id.
			if nextDist < next.dist || (nextDist == next.dist && nextHolds < next.holds) {
				next.dist = nextDist
				next.holds = nextHolds
				next.prev = edge
				heap.Push(pq, costItem{id: edge.ToID, dist: nextDist, holds: nextHolds})
			}
		}
	}

	return nil, ErrNoRoute
}

// scopedNode fetches a node and enforces the airport scope of the query.
func scopedNode(s store.Store, airport, op, id string) (*schema.Node, error) {
	node, err := s.GetNode(id)
	if err != nil {
		return nil, err
	}
	if node.Airport != airport {
		return nil, &store.StoreError{
			Op: op, Entity: "node", ID: id,
			Cause:   store.ErrUnknownNode,
			Context: "belongs to " + node.Airport + ", not " + airport,
		}
	}
	return node, nil
}

// reconstruct walks the predecessor edges back from the end node and
// builds the aligned id/name/via/hold sequences.
func reconstruct(airport string, s store.Store, end *schema.Node, total float64, prev func(string) *schema.Edge) (*Path, error) {
	var revEdges []*schema.Edge
	for edge := prev(end.ID); edge != nil; edge = prev(edge.FromID) {
		revEdges = append(revEdges, edge)
	}

	hops := len(revEdges)
	path := &Path{
		Airport:       airport,
		NodeIDs:       make([]string, hops+1),
		NodeNames:     make([]string, hops+1),
		Vias:          make([]string, hops),
		Holds:         make([]bool, hops+1),
		TotalDistance: total,
	}

	path.NodeIDs[hops] = end.ID
	path.NodeNames[hops] = end.Name
	for i, edge := range revEdges {
		pos := hops - i
		path.Vias[pos-1] = edge.Via
		path.Holds[pos] = edge.RequiresHold
		path.NodeIDs[pos-1] = edge.FromID
		node, err := s.GetNode(edge.FromID)
		if err != nil {
			return nil, err
		}
		path.NodeNames[pos-1] = node.Name
	}
	return path, nil
}

// costItem is a queue entry under the lazy decrease-key strategy:
// superseded entries stay queued and are skipped once their node settles.
type costItem struct {
	id    string
	dist  float64
	holds int
}

// costQueue orders by distance, then hold crossings, then node id, which
// pins down the visitation order completely.
type costQueue []costItem

func (q costQueue) Len() int { return len(q) }

func (q costQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	if q[i].holds != q[j].holds {
		return q[i].holds < q[j].holds
	}
	return q[i].id < q[j].id
}

func (q costQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *costQueue) Push(x any) { *q = append(*q, x.(costItem)) }

func (q *costQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
