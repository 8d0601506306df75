package ecs

// System advances one slice of world state by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, component tables, systems, and the event queue.
type World struct {
	entities entityStore
	tables   map[ComponentID]*sparseSet
	systems  []System
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{tables: make(map[ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. Destroying a
// stale handle is a no-op.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, table := range w.tables {
		table.remove(e.ID)
	}
	return true
}

// IsAlive reports whether a handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s != nil {
		w.systems = append(w.systems, s)
	}
}

// Update runs every system once, in registration order, then flushes any
// events left undrained.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

func (w *World) table(id ComponentID) *sparseSet {
	t, ok := w.tables[id]
	if !ok {
		t = newSparseSet()
		w.tables[id] = t
	}
	return t
}
