package ecs

// Add attaches a component to an entity, replacing any existing one.
func Add[T any](w *World, e Entity, k ComponentKind[T], v *T) bool {
	if w == nil || !w.IsAlive(e) || !k.Valid() || v == nil {
		return false
	}
	w.table(k.ID()).set(e.ID, v)
	return true
}

// Get returns the entity's component of kind k.
func Get[T any](w *World, e Entity, k ComponentKind[T]) (*T, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	v, ok := w.table(k.ID()).get(e.ID)
	if !ok {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// Has reports whether the entity carries a component of kind k.
func Has[T any](w *World, e Entity, k ComponentKind[T]) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.table(k.ID()).has(e.ID)
}

// Remove detaches the component of kind k from the entity.
func Remove[T any](w *World, e Entity, k ComponentKind[T]) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.table(k.ID()).remove(e.ID)
}

// ForEach visits every live entity carrying a component of kind k.
func ForEach[T any](w *World, k ComponentKind[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	t := w.table(k.ID())
	// iterate over a snapshot so fn may add or remove components
	ids := append([]int(nil), t.dense...)
	for _, id := range ids {
		v, ok := t.get(id)
		if !ok {
			continue
		}
		e := Entity{ID: id, Gen: w.entities.gen[id-1]}
		cast, ok := v.(*T)
		if !ok {
			continue
		}
		fn(e, cast)
	}
}

// First returns an arbitrary entity carrying kind k, typically used for
// singleton components.
func First[T any](w *World, k ComponentKind[T]) (Entity, *T, bool) {
	if w == nil {
		return Entity{}, nil, false
	}
	t := w.table(k.ID())
	if len(t.dense) == 0 {
		return Entity{}, nil, false
	}
	id := t.dense[0]
	v, _ := t.get(id)
	cast, ok := v.(*T)
	if !ok {
		return Entity{}, nil, false
	}
	return Entity{ID: id, Gen: w.entities.gen[id-1]}, cast, true
}
