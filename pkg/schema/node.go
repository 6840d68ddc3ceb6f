package schema

// Position is a point on the normalized 0-100 diagram-relative scale.
// It exists for validation and display; pathfinding cost never uses it.
type Position struct {
	X float64 `json:"x" validate:"gte=0,lte=100"`
	Y float64 `json:"y" validate:"gte=0,lte=100"`
}

// RunwayEndAttrs carries the attributes specific to a runway threshold.
type RunwayEndAttrs struct {
	// Heading is the magnetic heading in degrees (runway 27 -> 270).
	Heading int `json:"heading" validate:"gte=0,lte=359"`
	// RunwayID groups both ends of the same strip (e.g. "9_27").
	RunwayID string `json:"runwayId" validate:"required"`
}

// HoldShortAttrs carries the attributes specific to a hold-short position.
// Both references must resolve against the airport's subgraph; the
// validation engine reports dangling ones.
type HoldShortAttrs struct {
	Runway  string `json:"runway" validate:"required"`
	Taxiway string `json:"taxiway" validate:"required"`
}

// IntersectionAttrs carries the taxiway labels meeting at an intersection.
type IntersectionAttrs struct {
	Taxiways []string `json:"taxiways" validate:"required,min=1,dive,required"`
}

// Node is a point of interest at one airport. Exactly one kind-specific
// payload must be set, and it must match Kind.
type Node struct {
	// ID is globally unique and immutable once created,
	// conventionally {airport}_{kindslug}_{nameslug}.
	ID string `json:"id" validate:"required"`
	// Airport is the 4-letter uppercase ICAO code scoping every
	// query and path search.
	Airport string   `json:"airport" validate:"required,len=4"`
	Kind    NodeKind `json:"kind"`
	// Name is the human-readable label, unique only within an airport.
	Name     string   `json:"name" validate:"required"`
	Position Position `json:"position"`

	RunwayEnd    *RunwayEndAttrs    `json:"runwayEnd,omitempty"`
	HoldShort    *HoldShortAttrs    `json:"holdShort,omitempty"`
	Intersection *IntersectionAttrs `json:"intersection,omitempty"`
}

// Clone returns a deep copy so store reads never alias caller memory.
func (n *Node) Clone() *Node {
	clone := *n
	if n.RunwayEnd != nil {
		attrs := *n.RunwayEnd
		clone.RunwayEnd = &attrs
	}
	if n.HoldShort != nil {
		attrs := *n.HoldShort
		clone.HoldShort = &attrs
	}
	if n.Intersection != nil {
		attrs := IntersectionAttrs{Taxiways: make([]string, len(n.Intersection.Taxiways))}
		copy(attrs.Taxiways, n.Intersection.Taxiways)
		clone.Intersection = &attrs
	}
	return &clone
}
