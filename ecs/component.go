package ecs

import "sync/atomic"

// ComponentID identifies a component table inside a world.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is a typed key for one component type. Kinds are allocated
// once at package init via NewComponent and shared by every world.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// NewComponent allocates a fresh component kind for T.
func NewComponent[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}
