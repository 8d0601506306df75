package component

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/nav"
)

// GridWalker consumes a route one waypoint at a time. It satisfies
// nav.Mover, so the interaction controller can hand routes straight to the
// agent's component.
type GridWalker struct {
	Route nav.Route
	Index int
	// Speed is movement in pixels per second.
	Speed float64
}

// Follow replaces the current route. Any prior route is abandoned
// mid-consumption.
func (gw *GridWalker) Follow(r nav.Route) {
	gw.Route = r
	gw.Index = 0
}

// Arrived reports whether every waypoint has been consumed.
func (gw *GridWalker) Arrived() bool {
	return gw.Index >= len(gw.Route)
}

// Target returns the waypoint currently being walked toward.
func (gw *GridWalker) Target() (nav.Coord, bool) {
	if gw.Arrived() {
		return nav.Coord{}, false
	}
	return gw.Route[gw.Index], true
}

var GridWalkerComponent = ecs.NewComponent[GridWalker]()
