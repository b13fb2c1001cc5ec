package ecs

import (
	"fmt"

	"github.com/milk9111/platformer/ecs/component"
)

// World owns entities, their components and a per-frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]componentStore{}}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false for
// an entity that is already dead.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	store, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := &sparseSet[T]{}
		w.stores[kind.ID()] = set
		return set
	}
	return store.(*sparseSet[T])
}

// Add attaches value to e, replacing any previous component of that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	store := storeFor(w, kind, false)
	if store == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	return store.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store := storeFor(w, kind, false)
	if store == nil || !w.entities.isAlive(e) {
		return false
	}
	return store.remove(e.id())
}

// Query returns the live entities that carry every kind.
func (w *World) Query(kinds ...component.KindID) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	var smallest componentStore
	for _, k := range kinds {
		store, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		if smallest == nil || len(store.entities()) < len(smallest.entities()) {
			smallest = store
		}
	}
	out := make([]Entity, 0, len(smallest.entities()))
outer:
	for _, e := range smallest.entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, k := range kinds {
			if !w.stores[k.ID()].has(e.id()) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity carrying kind, for singletons such as
// the player.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	store := storeFor(w, kind, false)
	if store == nil {
		return 0, nil, false
	}
	for i, e := range store.denseEntities {
		if w.entities.isAlive(e) {
			return e, store.denseValues[i], true
		}
	}
	return 0, nil, false
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.Query(kind) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// Events is the queue systems push to during a frame. Update clears it.
func (w *World) Events() *EventQueue {
	return &w.events
}
