package ecs

import "testing"

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			for _, e := range ents {
				if !w.IsAlive(e) {
					t.Fatalf("entity %v should be alive", e)
				}
			}
			if c.destroyIndex >= 0 {
				victim := ents[c.destroyIndex]
				if !w.DestroyEntity(victim) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(victim) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(victim) {
					t.Fatalf("destroying a stale handle should be a no-op")
				}
			}
		})
	}
}

func TestEntityIDRecyclingBumpsGeneration(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	w.DestroyEntity(first)
	second := w.CreateEntity()

	if second.ID != first.ID {
		t.Fatalf("expected recycled id %d, got %d", first.ID, second.ID)
	}
	if second.Gen == first.Gen {
		t.Fatalf("recycled id must carry a new generation")
	}
	if w.IsAlive(first) {
		t.Fatalf("stale handle must not resolve")
	}
	if !w.IsAlive(second) {
		t.Fatalf("new handle must resolve")
	}
}

type counter struct {
	Hits int
}

var counterComponent = NewComponent[counter]()

func TestComponentsAndIteration(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	if !Add(w, e1, counterComponent, &counter{Hits: 1}) {
		t.Fatalf("add to e1 failed")
	}
	if !Add(w, e3, counterComponent, &counter{Hits: 3}) {
		t.Fatalf("add to e3 failed")
	}

	if Has(w, e2, counterComponent) {
		t.Fatalf("e2 should not have the component")
	}
	got, ok := Get(w, e1, counterComponent)
	if !ok || got.Hits != 1 {
		t.Fatalf("expected hits=1, got %v ok=%v", got, ok)
	}

	// mutation through the returned pointer is visible on the next Get
	got.Hits = 10
	again, _ := Get(w, e1, counterComponent)
	if again.Hits != 10 {
		t.Fatalf("expected hits=10 after mutation, got %d", again.Hits)
	}

	seen := 0
	ForEach(w, counterComponent, func(e Entity, v *counter) {
		seen++
	})
	if seen != 2 {
		t.Fatalf("expected 2 entities visited, got %d", seen)
	}

	if !Remove(w, e3, counterComponent) {
		t.Fatalf("remove from e3 failed")
	}
	if Has(w, e3, counterComponent) {
		t.Fatalf("e3 should no longer have the component")
	}

	w.DestroyEntity(e1)
	if _, ok := Get(w, e1, counterComponent); ok {
		t.Fatalf("destroyed entity must not resolve components")
	}
}

type tickSystem struct {
	order *[]string
	name  string
	dt    float64
}

func (s *tickSystem) Update(w *World, dt float64) {
	*s.order = append(*s.order, s.name)
	s.dt = dt
}

func TestSystemOrderAndEvents(t *testing.T) {
	w := NewWorld()
	order := []string{}
	a := &tickSystem{order: &order, name: "a"}
	b := &tickSystem{order: &order, name: "b"}
	w.AddSystem(a)
	w.AddSystem(b)

	w.Events().Push(Event{Type: "ping"})
	evts := w.Events().Drain()
	if len(evts) != 1 || evts[0].Type != "ping" {
		t.Fatalf("expected one ping event, got %v", evts)
	}

	w.Events().Push(Event{Type: "stale"})
	w.Update(1.0 / 60.0)

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("systems ran out of order: %v", order)
	}
	if a.dt != 1.0/60.0 {
		t.Fatalf("expected dt to reach systems, got %v", a.dt)
	}
	if evts := w.Events().Drain(); len(evts) != 0 {
		t.Fatalf("undrained events must be flushed at end of tick, got %v", evts)
	}
}
