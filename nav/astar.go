package nav

import "container/heap"

// Config selects the neighbor model for a path finder. The heuristic and
// step cost always move together so the search stays admissible: four-way
// uses unit steps with a Manhattan heuristic, eight-way uses uniform
// 10-per-step costs with a scaled Chebyshev heuristic (a diagonal step
// costs the same as an orthogonal one).
type Config struct {
	Diagonal bool
}

func (cfg Config) heuristic(a, b Coord) float64 {
	if cfg.Diagonal {
		return 10 * float64(Chebyshev(a, b))
	}
	return float64(Manhattan(a, b))
}

func (cfg Config) stepCost(a, b Coord) float64 {
	if cfg.Diagonal {
		return 10 * float64(Chebyshev(a, b))
	}
	return float64(Manhattan(a, b))
}

var cardinalOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

var diagonalOffsets = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func (cfg Config) neighbors(c Coord, out []Coord) []Coord {
	out = out[:0]
	for _, d := range cardinalOffsets {
		out = append(out, c.Add(d[0], d[1]))
	}
	if cfg.Diagonal {
		for _, d := range diagonalOffsets {
			out = append(out, c.Add(d[0], d[1]))
		}
	}
	return out
}

// PathFinder runs A* searches over walkability grids.
type PathFinder struct {
	cfg Config
}

// NewPathFinder returns a path finder with the given neighbor config.
func NewPathFinder(cfg Config) *PathFinder {
	return &PathFinder{cfg: cfg}
}

// Config returns the finder's neighbor config.
func (p *PathFinder) Config() Config {
	if p == nil {
		return Config{}
	}
	return p.cfg
}

// FindPath returns the cheapest route from start to goal, excluding start
// and including goal. It returns nil when either endpoint is outside the
// grid or unwalkable, or when no route exists; nil is a normal outcome,
// not an error. start == goal yields an empty non-nil route.
func (p *PathFinder) FindPath(g *Grid, start, goal Coord) Route {
	if p == nil || g == nil {
		return nil
	}
	if !g.Walkable(start) || !g.Walkable(goal) {
		return nil
	}
	if start == goal {
		return Route{}
	}

	g.resetCosts()

	startCell := g.Cell(start)
	startCell.g = 0
	startCell.h = p.cfg.heuristic(start, goal)
	startCell.f = startCell.h

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{coord: start, f: startCell.f})
	closed := make(map[Coord]bool)

	scratch := make([]Coord, 0, 8)

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem).coord
		if closed[current] {
			continue
		}
		if current == goal {
			return reconstruct(g, start, goal)
		}
		closed[current] = true

		cur := g.Cell(current)
		scratch = p.cfg.neighbors(current, scratch)
		for _, nc := range scratch {
			neighbor := g.Cell(nc)
			if neighbor == nil || !neighbor.Walkable || closed[nc] {
				continue
			}
			tentative := cur.g + p.cfg.stepCost(current, nc)
			if tentative >= neighbor.g {
				continue
			}
			neighbor.g = tentative
			neighbor.h = p.cfg.heuristic(nc, goal)
			neighbor.f = neighbor.g + neighbor.h
			neighbor.came = current
			neighbor.hasCame = true
			heap.Push(open, &openItem{coord: nc, f: neighbor.f})
		}
	}

	return nil
}

// reconstruct walks the came-from links from goal back to start and
// reverses in place. The start cell itself is not part of the route.
func reconstruct(g *Grid, start, goal Coord) Route {
	route := make(Route, 0, 32)
	cur := goal
	for cur != start {
		route = append(route, cur)
		cell := g.Cell(cur)
		if cell == nil || !cell.hasCame {
			return nil
		}
		cur = cell.came
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

type openItem struct {
	coord Coord
	f     float64
	order int
}

// openSet orders by f, breaking ties by insertion order so the first
// encountered cell wins.
type openSet struct {
	items []*openItem
	seq   int
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	if o.items[i].f != o.items[j].f {
		return o.items[i].f < o.items[j].f
	}
	return o.items[i].order < o.items[j].order
}

func (o *openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	o.seq++
	item.order = o.seq
	o.items = append(o.items, item)
}

func (o *openSet) Pop() any {
	old := o.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	o.items = old[:n-1]
	return item
}
