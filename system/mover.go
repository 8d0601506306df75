package system

import (
	"math"

	"github.com/milk9111/topdown/component"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/nav"
)

// MoverSystem walks every GridWalker along its route, one waypoint at a
// time. CellCenter projects a grid coordinate to the world-space point the
// walker steers toward.
type MoverSystem struct {
	CellCenter func(c nav.Coord) (float64, float64)
}

func NewMoverSystem(cellCenter func(c nav.Coord) (float64, float64)) *MoverSystem {
	return &MoverSystem{CellCenter: cellCenter}
}

func (ms *MoverSystem) Update(w *ecs.World, dt float64) {
	if ms == nil || w == nil || ms.CellCenter == nil {
		return
	}

	ecs.ForEach(w, component.GridWalkerComponent, func(e ecs.Entity, gw *component.GridWalker) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}

		budget := gw.Speed * dt
		for budget > 0 {
			target, ok := gw.Target()
			if !ok {
				break
			}
			tx, ty := ms.CellCenter(target)
			dx := tx - t.X
			dy := ty - t.Y
			dist := math.Hypot(dx, dy)
			if dist <= budget {
				t.X = tx
				t.Y = ty
				budget -= dist
				gw.Index++
				continue
			}
			t.X += dx / dist * budget
			t.Y += dy / dist * budget
			budget = 0
		}
	})
}
