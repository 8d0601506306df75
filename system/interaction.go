package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/nav"
)

// EventObstacleBroken is pushed after a break fires and the grid has been
// rebuilt. Data is a BrokenObstacle.
const EventObstacleBroken = "obstacle_broken"

// BrokenObstacle is the payload of an EventObstacleBroken event.
type BrokenObstacle struct {
	Kind string
	Root nav.Coord
}

// InteractionSystem drives the obstacle interaction controller's state
// machine once per tick and republishes its break hook as a world event.
type InteractionSystem struct {
	ctrl *nav.Interaction
}

func NewInteractionSystem(w *ecs.World, ctrl *nav.Interaction) *InteractionSystem {
	ctrl.SetOnBreak(func(kind string, root nav.Coord) {
		w.Events().Push(ecs.Event{
			Type: EventObstacleBroken,
			Data: BrokenObstacle{Kind: kind, Root: root},
		})
	})
	return &InteractionSystem{ctrl: ctrl}
}

func (is *InteractionSystem) Update(w *ecs.World, dt float64) {
	if is == nil || is.ctrl == nil {
		return
	}
	is.ctrl.Advance(dt)
}
