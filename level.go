package main

import (
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/nav"
	"github.com/milk9111/topdown/prefabs"
)

// LevelData is the on-disk level format: row-major tile value arrays per
// layer, one ground layer plus any number of obstacle layers.
type LevelData struct {
	Name   string      `json:"name"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	SpawnX int         `json:"spawn_x"`
	SpawnY int         `json:"spawn_y"`
	Layers []LayerData `json:"layers"`
}

type LayerData struct {
	Name string `json:"name"`
	// Kind is "ground" or "obstacle".
	Kind string `json:"kind"`
	// Obstacle keys into the obstacle classification table for obstacle
	// layers.
	Obstacle string `json:"obstacle,omitempty"`
	Color    string `json:"color,omitempty"`
	Tiles    []int  `json:"tiles"`
}

// Level owns the parsed layers and the tile/world coordinate conversions.
// It is the interaction controller's obstacle mutator: ClearTile clears a
// coordinate on every obstacle layer.
type Level struct {
	Name      string
	Width     int
	Height    int
	SpawnX    int
	SpawnY    int
	ground    *Layer
	obstacles []*Layer
}

// LoadLevel parses a named level and binds each obstacle layer to its
// class from the classification table.
func LoadLevel(name string, classes map[string]prefabs.ObstacleClass) (*Level, error) {
	raw, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	return parseLevel(raw, classes)
}

func parseLevel(raw []byte, classes map[string]prefabs.ObstacleClass) (*Level, error) {
	var data LevelData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	if data.Width <= 0 || data.Height <= 0 {
		return nil, fmt.Errorf("level %s: bad dimensions %dx%d", data.Name, data.Width, data.Height)
	}

	lvl := &Level{
		Name:   data.Name,
		Width:  data.Width,
		Height: data.Height,
		SpawnX: data.SpawnX,
		SpawnY: data.SpawnY,
	}

	for i := range data.Layers {
		ld := &data.Layers[i]
		if len(ld.Tiles) != data.Width*data.Height {
			return nil, fmt.Errorf("level %s: layer %s has %d tiles, want %d", data.Name, ld.Name, len(ld.Tiles), data.Width*data.Height)
		}
		layer := &Layer{
			name:   ld.Name,
			width:  data.Width,
			height: data.Height,
			tiles:  append([]int(nil), ld.Tiles...),
			color:  ld.Color,
		}
		switch ld.Kind {
		case "ground":
			if lvl.ground != nil {
				return nil, fmt.Errorf("level %s: multiple ground layers", data.Name)
			}
			lvl.ground = layer
		case "obstacle":
			class, ok := classes[ld.Obstacle]
			if !ok {
				return nil, fmt.Errorf("level %s: layer %s: unknown obstacle kind %q", data.Name, ld.Name, ld.Obstacle)
			}
			layer.kind = ld.Obstacle
			layer.class = class
			lvl.obstacles = append(lvl.obstacles, layer)
		default:
			return nil, fmt.Errorf("level %s: layer %s: unknown kind %q", data.Name, ld.Name, ld.Kind)
		}
	}
	if lvl.ground == nil {
		return nil, fmt.Errorf("level %s: no ground layer", data.Name)
	}
	return lvl, nil
}

// Ground returns the walkable layer.
func (l *Level) Ground() *Layer {
	return l.ground
}

// Obstacles returns the obstacle layers.
func (l *Level) Obstacles() []*Layer {
	return l.obstacles
}

// Breakables returns the obstacle layers as breakable sources.
func (l *Level) Breakables() []nav.Breakable {
	out := make([]nav.Breakable, len(l.obstacles))
	for i, o := range l.obstacles {
		out[i] = o
	}
	return out
}

// ClearTile clears c on every obstacle layer. The ground layer is never
// mutated.
func (l *Level) ClearTile(c nav.Coord) {
	for _, o := range l.obstacles {
		o.clear(c)
	}
}

// WorldToCell projects a world-space point onto the grid.
func (l *Level) WorldToCell(x, y float64) nav.Coord {
	return nav.Coord{
		X: int(math.Floor(x / common.TileSize)),
		Y: int(math.Floor(y / common.TileSize)),
	}
}

// CellCenter returns the world-space center of a cell.
func (l *Level) CellCenter(c nav.Coord) (float64, float64) {
	return float64(c.X)*common.TileSize + common.TileSize/2,
		float64(c.Y)*common.TileSize + common.TileSize/2
}

// Layer is one tile layer. Obstacle layers carry the classification that
// decides which of their tile values block movement.
type Layer struct {
	name   string
	kind   string
	class  prefabs.ObstacleClass
	width  int
	height int
	tiles  []int
	color  string
}

func (l *Layer) index(c nav.Coord) (int, bool) {
	if c.X < 0 || c.Y < 0 || c.X >= l.width || c.Y >= l.height {
		return 0, false
	}
	return c.Y*l.width + c.X, true
}

func (l *Layer) value(c nav.Coord) int {
	i, ok := l.index(c)
	if !ok {
		return 0
	}
	return l.tiles[i]
}

// HasTile reports whether any tile occupies c.
func (l *Layer) HasTile(c nav.Coord) bool {
	return l.value(c) != 0
}

// Bounds returns the layer extent in cells.
func (l *Layer) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.width, l.height)
}

// Blocks reports whether the tile at c blocks movement under this layer's
// class. Decorative tiles (canopy) never block.
func (l *Layer) Blocks(c nav.Coord) bool {
	return l.class.BlocksValue(l.value(c))
}

// Occupied returns the root cell plus any decorative cells the class
// places around it that are actually present in the layer.
func (l *Layer) Occupied(root nav.Coord) []nav.Coord {
	out := []nav.Coord{root}
	for _, off := range l.class.Canopy {
		c := root.Add(off.X, off.Y)
		if l.class.DecorativeValue(l.value(c)) {
			out = append(out, c)
		}
	}
	return out
}

// Kind returns the obstacle kind key, empty for the ground layer.
func (l *Layer) Kind() string {
	return l.kind
}

func (l *Layer) clear(c nav.Coord) {
	if i, ok := l.index(c); ok {
		l.tiles[i] = 0
	}
}
