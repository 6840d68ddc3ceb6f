package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dd0wney/taxigraph/pkg/schema"
)

// checkConnectivity verifies every node is reachable from every other
// via undirected traversal of CONNECTS edges. The largest component is
// taken as the airport proper; every other component is reported as a
// disconnected island with its member node ids.
func checkConnectivity(v *graphView, report *Report) {
	if len(v.nodes) == 0 {
		return
	}

	seen := make(map[string]bool, len(v.byID))
	var components [][]string

	for _, id := range v.sortedIDs() {
		if seen[id] {
			continue
		}
		// BFS one component
		component := []string{id}
		seen[id] = true
		for frontier := []string{id}; len(frontier) > 0; {
			current := frontier[0]
			frontier = frontier[1:]
			for _, next := range v.neighbors[current] {
				if !seen[next] {
					seen[next] = true
					component = append(component, next)
					frontier = append(frontier, next)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	if len(components) < 2 {
		return
	}

	// Keep the biggest component as the mainland.
	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	for _, island := range components[1:] {
		report.add(SeverityError, CodeDisconnectedIsland,
			fmt.Sprintf("%d node(s) unreachable from the rest of %s: %s",
				len(island), v.airport, strings.Join(island, ", ")),
			island...)
	}
}

// checkDanglingHoldReferences verifies each HoldShort's runway reference
// resolves to a RunwayEnd (by name or runway_id) and its taxiway
// reference to a taxiway visible at an intersection or on an edge.
func checkDanglingHoldReferences(v *graphView, report *Report) {
	runways := make(map[string]bool)
	taxiways := make(map[string]bool)
	for _, n := range v.nodes {
		switch n.Kind {
		case schema.KindRunwayEnd:
			runways[n.Name] = true
			if n.RunwayEnd != nil {
				runways[n.RunwayEnd.RunwayID] = true
			}
		case schema.KindTaxiwayIntersection:
			if n.Intersection != nil {
				for _, t := range n.Intersection.Taxiways {
					taxiways[t] = true
				}
			}
		}
	}
	for _, e := range v.edges {
		if e.Via != schema.ViaRunway && e.Via != schema.ViaRamp {
			taxiways[e.Via] = true
		}
	}

	for _, n := range v.nodes {
		if n.Kind != schema.KindHoldShort || n.HoldShort == nil {
			continue
		}
		if !runways[n.HoldShort.Runway] {
			report.add(SeverityError, CodeDanglingHoldReference,
				fmt.Sprintf("hold short %s references runway %q which does not exist",
					n.ID, n.HoldShort.Runway),
				n.ID)
		}
		if !taxiways[n.HoldShort.Taxiway] {
			report.add(SeverityError, CodeDanglingHoldReference,
				fmt.Sprintf("hold short %s references taxiway %q which does not exist",
					n.ID, n.HoldShort.Taxiway),
				n.ID)
		}
	}
}

// checkOrphanHoldShorts flags HoldShort nodes with no incident
// requires_hold edge: a hold position that gates nothing is almost
// certainly a diagram misread.
func checkOrphanHoldShorts(v *graphView, report *Report) {
	gated := make(map[string]bool)
	for _, e := range v.edges {
		if e.RequiresHold {
			gated[e.FromID] = true
			gated[e.ToID] = true
		}
	}

	for _, n := range v.nodes {
		if n.Kind != schema.KindHoldShort {
			continue
		}
		if !gated[n.ID] {
			report.add(SeverityWarning, CodeOrphanHoldShort,
				fmt.Sprintf("hold short %s has no requires_hold edge", n.ID),
				n.ID)
		}
	}
}

// positionTolerance is the rounding applied before comparing coordinates:
// two nodes inside the same unit cell on the 0-100 scale are probable
// duplicates pending review.
const positionTolerance = 1.0

func checkDuplicatePositions(v *graphView, report *Report) {
	type cell struct{ x, y int }
	occupied := make(map[cell][]string)
	for _, n := range v.nodes {
		c := cell{
			x: int(math.Round(n.Position.X / positionTolerance)),
			y: int(math.Round(n.Position.Y / positionTolerance)),
		}
		occupied[c] = append(occupied[c], n.ID)
	}

	var cells []cell
	for c, ids := range occupied {
		if len(ids) > 1 {
			cells = append(cells, c)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].x != cells[j].x {
			return cells[i].x < cells[j].x
		}
		return cells[i].y < cells[j].y
	})
	for _, c := range cells {
		ids := occupied[c]
		sort.Strings(ids)
		report.add(SeverityWarning, CodeDuplicatePosition,
			fmt.Sprintf("%d nodes share position (%d, %d): %s",
				len(ids), c.x, c.y, strings.Join(ids, ", ")),
			ids...)
	}
}

// checkRunwayPairing expects every runway_id to group exactly two ends.
func checkRunwayPairing(v *graphView, report *Report) {
	byRunway := make(map[string][]string)
	for _, n := range v.nodes {
		if n.Kind == schema.KindRunwayEnd && n.RunwayEnd != nil {
			byRunway[n.RunwayEnd.RunwayID] = append(byRunway[n.RunwayEnd.RunwayID], n.ID)
		}
	}

	var runwayIDs []string
	for id := range byRunway {
		runwayIDs = append(runwayIDs, id)
	}
	sort.Strings(runwayIDs)
	for _, runwayID := range runwayIDs {
		ends := byRunway[runwayID]
		if len(ends) != 2 {
			sort.Strings(ends)
			report.add(SeverityWarning, CodeUnpairedRunwayEnd,
				fmt.Sprintf("runway %s has %d end(s), expected 2", runwayID, len(ends)),
				ends...)
		}
	}
}

// checkIntersectionDegree flags taxiway intersections with fewer than
// two connections: an intersection that doesn't join anything is suspect.
func checkIntersectionDegree(v *graphView, report *Report) {
	for _, n := range v.nodes {
		if n.Kind != schema.KindTaxiwayIntersection {
			continue
		}
		if deg := v.degree(n.ID); deg < 2 {
			report.add(SeverityWarning, CodeLoneIntersection,
				fmt.Sprintf("taxiway intersection %s has only %d connection(s)", n.ID, deg),
				n.ID)
		}
	}
}

// checkFacilityConnections flags FBOs, terminals, and ramps with no
// connections at all. Aircraft have to be able to taxi out of them.
func checkFacilityConnections(v *graphView, report *Report) {
	for _, n := range v.nodes {
		switch n.Kind {
		case schema.KindFBO, schema.KindTerminal, schema.KindRamp:
			if v.degree(n.ID) == 0 {
				report.add(SeverityError, CodeUnconnectedFacility,
					fmt.Sprintf("%s %s has no connections", n.Kind, n.ID),
					n.ID)
			}
		}
	}
}
