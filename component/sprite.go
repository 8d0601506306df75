package component

import (
	"image/color"

	"github.com/milk9111/topdown/ecs"
)

// Sprite is a flat-colored rectangle centered on the entity's transform.
type Sprite struct {
	W     float64
	H     float64
	Color color.NRGBA
}

var SpriteComponent = ecs.NewComponent[Sprite]()

// PlayerTag marks the controllable agent.
type PlayerTag struct{}

var PlayerTagComponent = ecs.NewComponent[PlayerTag]()
