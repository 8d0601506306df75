package nav

import "image"

// TileSource is a read-only view over one tile layer.
type TileSource interface {
	HasTile(c Coord) bool
	Bounds() image.Rectangle
}

// ObstacleSource is a tile layer whose tiles may block movement. Blocks is
// separate from HasTile because multi-cell obstacles have non-blocking
// decorative tiles (a tree canopy overlapping the trunk's column); only the
// source knows which of its tiles occupy ground level.
type ObstacleSource interface {
	TileSource
	Blocks(c Coord) bool
}

// DefaultMargin is how far the grid extends past the layer bounds on each
// side, so routes can wrap around obstacles sitting at the map edge.
const DefaultMargin = 2

// Builder rebuilds walkability grids from tile layers. A rebuild is always
// wholesale: the builder returns a fresh grid and never patches an existing
// one, so a grid handed out earlier stays internally consistent for any
// search still holding it.
type Builder struct {
	// Margin overrides DefaultMargin when > 0.
	Margin int
}

// Build samples the ground layer and every obstacle layer and returns a new
// grid. A coordinate is walkable iff the ground layer has a tile there and
// no obstacle source blocks it. Build does not mutate the layers and is
// idempotent for unchanged inputs.
func (b *Builder) Build(ground TileSource, obstacles []ObstacleSource) *Grid {
	margin := DefaultMargin
	if b != nil && b.Margin > 0 {
		margin = b.Margin
	}

	bounds := ground.Bounds()
	for _, o := range obstacles {
		bounds = bounds.Union(o.Bounds())
	}
	bounds = bounds.Inset(-margin)

	grid := NewGrid(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := Coord{X: x, Y: y}
			if !ground.HasTile(c) {
				continue
			}
			blocked := false
			for _, o := range obstacles {
				if o.Blocks(c) {
					blocked = true
					break
				}
			}
			grid.SetWalkable(c, !blocked)
		}
	}
	return grid
}
