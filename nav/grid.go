package nav

import (
	"image"
	"math"
)

// Coord identifies one grid cell. Value semantics; usable as a map key.
type Coord struct {
	X int
	Y int
}

// Add returns c offset by dx, dy.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the L1 distance between two coords.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev returns the L∞ distance between two coords.
func Chebyshev(a, b Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cell is one addressable unit of the walkability grid. Walkable is fixed
// at build time; the cost fields and the CameFrom link are per-search
// scratch state, reset by the path finder before every search.
type Cell struct {
	Coord    Coord
	Walkable bool

	g       float64
	h       float64
	f       float64
	came    Coord
	hasCame bool
}

// Grid is the walkability grid over a bounded region. Cells live in an
// arena keyed by coordinate; CameFrom links are stored as keys into the
// arena, never as pointers between cells.
type Grid struct {
	bounds image.Rectangle
	cells  map[Coord]*Cell
}

// NewGrid allocates an empty grid covering bounds. Every coordinate inside
// bounds gets exactly one cell, initially unwalkable.
func NewGrid(bounds image.Rectangle) *Grid {
	g := &Grid{
		bounds: bounds,
		cells:  make(map[Coord]*Cell, bounds.Dx()*bounds.Dy()),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := Coord{X: x, Y: y}
			g.cells[c] = &Cell{Coord: c}
		}
	}
	return g
}

// Bounds returns the covered region.
func (g *Grid) Bounds() image.Rectangle {
	if g == nil {
		return image.Rectangle{}
	}
	return g.bounds
}

// Cell returns the cell at c, or nil if c is outside bounds.
func (g *Grid) Cell(c Coord) *Cell {
	if g == nil {
		return nil
	}
	return g.cells[c]
}

// Walkable reports whether c is inside bounds and walkable.
func (g *Grid) Walkable(c Coord) bool {
	if g == nil {
		return false
	}
	cell := g.cells[c]
	return cell != nil && cell.Walkable
}

// SetWalkable updates walkability for c. No-op outside bounds.
func (g *Grid) SetWalkable(c Coord, walkable bool) {
	if g == nil {
		return
	}
	if cell := g.cells[c]; cell != nil {
		cell.Walkable = walkable
	}
}

// resetCosts clears per-search scratch state on every cell.
func (g *Grid) resetCosts() {
	for _, cell := range g.cells {
		cell.g = math.Inf(1)
		cell.h = 0
		cell.f = math.Inf(1)
		cell.came = Coord{}
		cell.hasCame = false
	}
}

// Route is an ordered waypoint list from start (exclusive) to goal
// (inclusive). nil means no path; an empty non-nil route means the start
// already is the goal.
type Route []Coord

// Cost sums the step costs of the route under cfg, walking from start.
func (r Route) Cost(start Coord, cfg Config) float64 {
	total := 0.0
	prev := start
	for _, c := range r {
		total += cfg.stepCost(prev, c)
		prev = c
	}
	return total
}
