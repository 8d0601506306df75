package component

import "github.com/milk9111/topdown/ecs"

// Transform is a world-space position in pixels.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = ecs.NewComponent[Transform]()
