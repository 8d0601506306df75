package system

import (
	"math"
	"testing"

	"github.com/milk9111/topdown/component"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/nav"
)

func cellCenter32(c nav.Coord) (float64, float64) {
	return float64(c.X)*32 + 16, float64(c.Y)*32 + 16
}

func newWalkerWorld(speed float64, route nav.Route) (*ecs.World, ecs.Entity, *component.GridWalker, *component.Transform) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	t := &component.Transform{X: 16, Y: 16}
	gw := &component.GridWalker{Speed: speed}
	gw.Follow(route)
	ecs.Add(w, e, component.TransformComponent, t)
	ecs.Add(w, e, component.GridWalkerComponent, gw)
	return w, e, gw, t
}

func TestMoverConsumesWaypointsInOrder(t *testing.T) {
	route := nav.Route{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}}
	w, _, gw, tr := newWalkerWorld(32, route)
	ms := NewMoverSystem(cellCenter32)

	// 32 px/s with dt 0.25 moves exactly 8 px per tick, one cell per
	// four ticks.
	for i := 0; i < 4; i++ {
		ms.Update(w, 0.25)
	}
	if gw.Index != 1 {
		t.Fatalf("after 1s expected waypoint 1 consumed, index=%d", gw.Index)
	}
	wantX, wantY := cellCenter32(route[0])
	if math.Abs(tr.X-wantX) > 1e-9 || math.Abs(tr.Y-wantY) > 1e-9 {
		t.Fatalf("expected agent at %v,%v, got %v,%v", wantX, wantY, tr.X, tr.Y)
	}

	for i := 0; i < 8; i++ {
		ms.Update(w, 0.25)
	}
	if !gw.Arrived() {
		t.Fatalf("expected route fully consumed, index=%d of %d", gw.Index, len(gw.Route))
	}
	wantX, wantY = cellCenter32(route[len(route)-1])
	if math.Abs(tr.X-wantX) > 1e-9 || math.Abs(tr.Y-wantY) > 1e-9 {
		t.Fatalf("expected agent at goal %v,%v, got %v,%v", wantX, wantY, tr.X, tr.Y)
	}
}

func TestMoverCrossesMultipleWaypointsInOneTick(t *testing.T) {
	route := nav.Route{{X: 1, Y: 0}, {X: 2, Y: 0}}
	w, _, gw, tr := newWalkerWorld(32*120, route)
	ms := NewMoverSystem(cellCenter32)

	ms.Update(w, 1.0/60.0)
	if !gw.Arrived() {
		t.Fatalf("fast walker should finish the route in one tick, index=%d", gw.Index)
	}
	wantX, _ := cellCenter32(route[1])
	if tr.X != wantX {
		t.Fatalf("fast walker should stop at the goal center, x=%v want %v", tr.X, wantX)
	}
}

func TestMoverEmptyRouteArrivesImmediately(t *testing.T) {
	w, _, gw, tr := newWalkerWorld(32, nav.Route{})
	ms := NewMoverSystem(cellCenter32)

	if !gw.Arrived() {
		t.Fatalf("empty route should already be arrived")
	}
	ms.Update(w, 1.0/60.0)
	if tr.X != 16 || tr.Y != 16 {
		t.Fatalf("empty route must not move the agent, got %v,%v", tr.X, tr.Y)
	}
}

func TestMoverFollowReplacesRoute(t *testing.T) {
	route := nav.Route{{X: 1, Y: 0}, {X: 2, Y: 0}}
	w, _, gw, _ := newWalkerWorld(32, route)
	ms := NewMoverSystem(cellCenter32)

	for i := 0; i < 2; i++ {
		ms.Update(w, 0.25)
	}
	gw.Follow(nav.Route{{X: 0, Y: 1}})
	if gw.Index != 0 || len(gw.Route) != 1 {
		t.Fatalf("Follow must restart consumption on the new route")
	}
	for i := 0; i < 40; i++ {
		ms.Update(w, 0.25)
	}
	if !gw.Arrived() {
		t.Fatalf("expected replacement route consumed")
	}
}
