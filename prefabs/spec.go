package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec loads and unmarshals one yaml prefab.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// AgentSpec tunes the player-controlled walker.
type AgentSpec struct {
	Name      string  `yaml:"name"`
	MoveSpeed float64 `yaml:"move_speed"`
	SpawnX    int     `yaml:"spawn_x"`
	SpawnY    int     `yaml:"spawn_y"`
	Color     string  `yaml:"color"`
}

func LoadAgentSpec() (*AgentSpec, error) {
	spec, err := LoadSpec[AgentSpec]("agent.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// NavSpec tunes routing and the break state machine.
type NavSpec struct {
	// Diagonal switches the path finder to the eight-way neighbor model.
	Diagonal bool `yaml:"diagonal"`
	// BreakDelay is the seconds between arrival and obstacle removal.
	BreakDelay float64 `yaml:"break_delay"`
	// CancelOnSupersede drops a scheduled removal once a newer request
	// replaces it.
	CancelOnSupersede bool `yaml:"cancel_on_supersede"`
	// GridMargin is the cell padding around the layer bounds.
	GridMargin int `yaml:"grid_margin"`
}

func LoadNavSpec() (*NavSpec, error) {
	spec, err := LoadSpec[NavSpec]("nav.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Offset is a cell offset relative to an obstacle's root.
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ObstacleClass describes one obstacle type's tile semantics: which tile
// values block movement, which are decorative, and where a root's
// decorative cells sit. A tree's trunk blocks the cell it stands on while
// its canopy rows overlap walkable ground.
type ObstacleClass struct {
	Blocking   []int    `yaml:"blocking"`
	Decorative []int    `yaml:"decorative"`
	Canopy     []Offset `yaml:"canopy"`
	Color      string   `yaml:"color"`
}

// BlocksValue reports whether a tile value is a blocking tile for this
// class.
func (oc ObstacleClass) BlocksValue(v int) bool {
	for _, b := range oc.Blocking {
		if b == v {
			return true
		}
	}
	return false
}

// DecorativeValue reports whether a tile value is decorative.
func (oc ObstacleClass) DecorativeValue(v int) bool {
	for _, d := range oc.Decorative {
		if d == v {
			return true
		}
	}
	return false
}

// ObstaclesSpec maps obstacle kinds to their classes.
type ObstaclesSpec struct {
	Obstacles map[string]ObstacleClass `yaml:"obstacles"`
}

func LoadObstaclesSpec() (*ObstaclesSpec, error) {
	spec, err := LoadSpec[ObstaclesSpec]("obstacles.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
