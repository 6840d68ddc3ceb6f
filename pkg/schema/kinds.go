package schema

// NodeKind identifies the type of a point of interest on an airport diagram.
// The set is closed: validation rejects anything outside it.
type NodeKind string

const (
	KindRunwayEnd           NodeKind = "RunwayEnd"
	KindTaxiwayIntersection NodeKind = "TaxiwayIntersection"
	KindHoldShort           NodeKind = "HoldShort"
	KindFBO                 NodeKind = "FBO"
	KindTerminal            NodeKind = "Terminal"
	KindRamp                NodeKind = "Ramp"
)

// AllKinds returns every valid node kind in a stable order.
func AllKinds() []NodeKind {
	return []NodeKind{
		KindRunwayEnd,
		KindTaxiwayIntersection,
		KindHoldShort,
		KindFBO,
		KindTerminal,
		KindRamp,
	}
}

// Valid reports whether k is a member of the closed kind set.
func (k NodeKind) Valid() bool {
	switch k {
	case KindRunwayEnd, KindTaxiwayIntersection, KindHoldShort,
		KindFBO, KindTerminal, KindRamp:
		return true
	}
	return false
}

// Slug returns the short identifier fragment used in node IDs
// (e.g. "KDPA_rwy_27L" for a runway end at KDPA).
func (k NodeKind) Slug() string {
	switch k {
	case KindRunwayEnd:
		return "rwy"
	case KindTaxiwayIntersection:
		return "twy"
	case KindHoldShort:
		return "hold"
	case KindFBO:
		return "fbo"
	case KindTerminal:
		return "terminal"
	case KindRamp:
		return "ramp"
	}
	return ""
}

// Direction is the compass orientation of travel along an edge.
// It is descriptive metadata only; routing never reads it.
type Direction string

const (
	North     Direction = "N"
	Northeast Direction = "NE"
	East      Direction = "E"
	Southeast Direction = "SE"
	South     Direction = "S"
	Southwest Direction = "SW"
	West      Direction = "W"
	Northwest Direction = "NW"
)

// Valid reports whether d is one of the 8 compass points.
func (d Direction) Valid() bool {
	switch d {
	case North, Northeast, East, Southeast, South, Southwest, West, Northwest:
		return true
	}
	return false
}

// Opposite returns the reverse compass direction, used when a
// bidirectional connection stores its return edge.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case Northeast:
		return Southwest
	case East:
		return West
	case Southeast:
		return Northwest
	case South:
		return North
	case Southwest:
		return Northeast
	case West:
		return East
	case Northwest:
		return Southeast
	}
	return d
}

// Surface markers for edges that do not follow a named taxiway.
const (
	ViaRunway = "runway"
	ViaRamp   = "ramp"
)
