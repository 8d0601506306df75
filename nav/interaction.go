package nav

import "log"

// State is the interaction controller's motion state.
type State int

const (
	StateIdle State = iota
	StateMoving
	StateBreaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateBreaking:
		return "breaking"
	}
	return "unknown"
}

// Mover consumes routes one waypoint at a time. The controller never steps
// the agent itself; it only hands routes over and polls for arrival.
type Mover interface {
	Follow(r Route)
	Arrived() bool
}

// Remover mutates obstacle layers by clearing single tiles.
type Remover interface {
	ClearTile(c Coord)
}

// Breakable is an obstacle layer whose obstacles can be removed. Occupied
// lists every cell belonging to the obstacle rooted at root, blocking and
// decorative alike, so a break clears the whole object. Kind names the
// obstacle type for logging and break hooks.
type Breakable interface {
	ObstacleSource
	Occupied(root Coord) []Coord
	Kind() string
}

// InteractionConfig tunes the break state machine.
type InteractionConfig struct {
	// BreakDelay is the wait in seconds between arriving next to an
	// obstacle and actually removing it.
	BreakDelay float64
	// CancelOnSupersede drops a scheduled removal when a newer request
	// has superseded it. When false a scheduled removal always fires
	// against the coordinate recorded at arrival time.
	CancelOnSupersede bool
	// ScanRadius is how far around a requested cell to look for the
	// obstacle's blocking root. 0 means the default of 1 (a 3x3 scan).
	ScanRadius int
}

const defaultBreakDelay = 0.5

// Interaction sequences "walk next to an obstacle, wait, remove it,
// rebuild the grid". All collaborators are injected at construction and
// every transition happens inside Advance; the delay is an elapsed-time
// accumulator, never a blocking wait.
type Interaction struct {
	cfg       InteractionConfig
	finder    *PathFinder
	builder   *Builder
	ground    TileSource
	obstacles []Breakable
	remover   Remover
	mover     Mover
	onBreak   func(kind string, root Coord)

	grid  *Grid
	state State
	epoch int

	// pending is recorded at request time and armed on arrival.
	pendingRoot   Coord
	pendingSource Breakable
	pendingEpoch  int
	hasPending    bool

	// armed is the scheduled removal, counting down across ticks.
	armedRoot   Coord
	armedSource Breakable
	armedEpoch  int
	elapsed     float64
	armed       bool
}

// NewInteraction wires a controller and builds the initial grid.
func NewInteraction(cfg InteractionConfig, finder *PathFinder, builder *Builder, ground TileSource, obstacles []Breakable, remover Remover, mover Mover) *Interaction {
	if cfg.BreakDelay <= 0 {
		cfg.BreakDelay = defaultBreakDelay
	}
	if cfg.ScanRadius <= 0 {
		cfg.ScanRadius = 1
	}
	c := &Interaction{
		cfg:       cfg,
		finder:    finder,
		builder:   builder,
		ground:    ground,
		obstacles: obstacles,
		remover:   remover,
		mover:     mover,
	}
	c.Rebuild()
	return c
}

// Grid returns the current walkability grid. The returned grid is replaced
// wholesale on rebuild, never mutated in place.
func (c *Interaction) Grid() *Grid {
	if c == nil {
		return nil
	}
	return c.grid
}

// State returns the current motion state.
func (c *Interaction) State() State {
	if c == nil {
		return StateIdle
	}
	return c.state
}

// SetOnBreak registers a hook called after an obstacle has been removed
// and the grid rebuilt.
func (c *Interaction) SetOnBreak(fn func(kind string, root Coord)) {
	if c != nil {
		c.onBreak = fn
	}
}

// SetConfig swaps tuning values without resetting machine state. Used for
// live prefab reloads.
func (c *Interaction) SetConfig(cfg InteractionConfig) {
	if c == nil {
		return
	}
	if cfg.BreakDelay <= 0 {
		cfg.BreakDelay = defaultBreakDelay
	}
	if cfg.ScanRadius <= 0 {
		cfg.ScanRadius = 1
	}
	c.cfg = cfg
}

// PendingBreak returns the obstacle root currently recorded for removal,
// armed or not. Presentation uses it to highlight the break target.
func (c *Interaction) PendingBreak() (Coord, bool) {
	if c == nil {
		return Coord{}, false
	}
	if c.armed {
		return c.armedRoot, true
	}
	if c.hasPending {
		return c.pendingRoot, true
	}
	return Coord{}, false
}

// Rebuild replaces the grid from the current layer state.
func (c *Interaction) Rebuild() {
	if c == nil {
		return
	}
	sources := make([]ObstacleSource, len(c.obstacles))
	for i, o := range c.obstacles {
		sources[i] = o
	}
	c.grid = c.builder.Build(c.ground, sources)
}

// RequestMove routes the agent to goal and hands the route to the mover.
// It returns false and leaves all state untouched when no route exists.
// A successful request supersedes the current route; a pending break that
// has not yet been armed is discarded with it.
func (c *Interaction) RequestMove(agent, goal Coord) bool {
	if c == nil {
		return false
	}
	route := c.finder.FindPath(c.grid, agent, goal)
	if route == nil {
		log.Printf("nav: no route from %v to %v", agent, goal)
		return false
	}
	c.epoch++
	c.hasPending = false
	c.mover.Follow(route)
	c.state = StateMoving
	return true
}

// RequestBreak walks the agent next to the obstacle at or around target
// and schedules its removal for when the agent arrives. The request is
// dropped, leaving all state untouched, when no obstacle is found nearby,
// when the obstacle has no reachable adjacent cell, or when no route
// exists to the chosen cell.
func (c *Interaction) RequestBreak(agent, target Coord) bool {
	if c == nil {
		return false
	}
	root, source, ok := c.locateRoot(target)
	if !ok {
		log.Printf("nav: no obstacle near %v", target)
		return false
	}
	adjacent, ok := c.nearestAdjacent(root, agent)
	if !ok {
		log.Printf("nav: obstacle at %v is unreachable", root)
		return false
	}
	route := c.finder.FindPath(c.grid, agent, adjacent)
	if route == nil {
		log.Printf("nav: no route from %v to %v", agent, adjacent)
		return false
	}
	c.epoch++
	c.pendingRoot = root
	c.pendingSource = source
	c.pendingEpoch = c.epoch
	c.hasPending = true
	c.mover.Follow(route)
	c.state = StateMoving
	return true
}

// Advance drives the state machine by dt seconds. It must be called once
// per tick; it never blocks.
func (c *Interaction) Advance(dt float64) {
	if c == nil {
		return
	}

	if c.armed {
		c.elapsed += dt
		if c.elapsed >= c.cfg.BreakDelay {
			c.fire()
		}
	}

	if c.state == StateMoving && c.mover.Arrived() {
		if c.hasPending {
			c.armedRoot = c.pendingRoot
			c.armedSource = c.pendingSource
			c.armedEpoch = c.pendingEpoch
			c.elapsed = 0
			c.armed = true
			c.hasPending = false
			c.state = StateBreaking
		} else {
			c.state = StateIdle
		}
	}
}

// fire executes a scheduled removal. In cancel-on-supersede mode a removal
// whose request has since been superseded is dropped instead.
func (c *Interaction) fire() {
	root := c.armedRoot
	source := c.armedSource
	stale := c.armedEpoch != c.epoch
	c.armed = false
	if c.state == StateBreaking {
		c.state = StateIdle
	}

	if stale && c.cfg.CancelOnSupersede {
		log.Printf("nav: dropping superseded break at %v", root)
		return
	}

	// ClearTile may mutate the source's cell list; snapshot it first.
	cells := append([]Coord(nil), source.Occupied(root)...)
	for _, cell := range cells {
		c.remover.ClearTile(cell)
	}
	c.Rebuild()
	if c.onBreak != nil {
		c.onBreak(source.Kind(), root)
	}
}

// locateRoot finds the blocking root cell owning the obstacle at or around
// target, scanning outward ring by ring so the requested cell wins first.
func (c *Interaction) locateRoot(target Coord) (Coord, Breakable, bool) {
	for r := 0; r <= c.cfg.ScanRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				cell := target.Add(dx, dy)
				for _, o := range c.obstacles {
					if o.Blocks(cell) {
						return cell, o, true
					}
				}
			}
		}
	}
	return Coord{}, nil, false
}

// nearestAdjacent picks the walkable neighbor of root closest to the agent
// by Manhattan distance. Walkability already excludes cells blocked by any
// obstacle layer.
func (c *Interaction) nearestAdjacent(root, agent Coord) (Coord, bool) {
	var best Coord
	bestDist := -1
	scratch := make([]Coord, 0, 8)
	for _, n := range c.finder.Config().neighbors(root, scratch) {
		if !c.grid.Walkable(n) {
			continue
		}
		d := Manhattan(n, agent)
		if bestDist < 0 || d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best, bestDist >= 0
}
