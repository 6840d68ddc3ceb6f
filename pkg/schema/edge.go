package schema

// EdgeAttrs are the traversal attributes of a CONNECTS edge.
type EdgeAttrs struct {
	// Via names the surface: a taxiway letter, ViaRunway, or ViaRamp.
	Via string `json:"via" validate:"required"`
	// Distance is the relative cost on a 1-10 scale and is the only
	// input to path-finding weight.
	Distance  float64   `json:"distance" validate:"gte=1,lte=10"`
	Direction Direction `json:"direction"`
	// RequiresHold marks a crossing of an active runway; traversing
	// the edge needs a hold-short acknowledgment.
	RequiresHold bool `json:"requiresHold"`
}

// Edge is a directed traversable segment between two nodes at the
// same airport.
type Edge struct {
	FromID string `json:"fromId" validate:"required"`
	ToID   string `json:"toId" validate:"required"`
	EdgeAttrs
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	clone := *e
	return &clone
}
