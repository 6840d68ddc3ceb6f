package routing

import "errors"

// ErrNoRoute means the search completed and no path exists. It is
// deliberately distinct from store.ErrUnknownNode: "searched and failed"
// is not "malformed input".
var ErrNoRoute = errors.New("no route found")

// Path is the route contract consumed downstream. NodeIDs, NodeNames and
// Holds are index-aligned: Holds[i] is true iff arriving at node i crossed
// an active runway and therefore required a hold-short acknowledgment.
// Holds[0] is always false.
type Path struct {
	Airport   string   `json:"airport"`
	NodeIDs   []string `json:"nodeIds"`
	NodeNames []string `json:"nodeNames"`
	// Vias names the surface traversed for each hop; len(Vias) is
	// len(NodeIDs)-1.
	Vias          []string `json:"vias"`
	Holds         []bool   `json:"holds"`
	TotalDistance float64  `json:"totalDistance"`
}

// HoldCount returns how many hold-short acknowledgments the route needs.
func (p *Path) HoldCount() int {
	count := 0
	for _, h := range p.Holds {
		if h {
			count++
		}
	}
	return count
}
