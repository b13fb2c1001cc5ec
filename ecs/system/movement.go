package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
	"go.uber.org/zap"
)

// MovementSystem ticks every Mover once. Platforms go first so the bodies
// standing on them can be carried by the distance they moved.
type MovementSystem struct {
	log *zap.Logger
}

func NewMovementSystem(log *zap.Logger) *MovementSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &MovementSystem{log: log}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	carried := make(map[*physics.Surface]cp.Vector)
	for _, e := range w.Query(component.PlatformTagComponent.Kind(), component.MoverComponent.Kind()) {
		mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
		m.step(w, e, mover)
		if mover.Body != nil && mover.Body.Surface() != nil {
			carried[mover.Body.Surface()] = mover.Delta
		}
	}

	for _, e := range w.Query(component.MoverComponent.Kind()) {
		if ecs.Has(w, e, component.PlatformTagComponent.Kind()) {
			continue
		}
		mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
		carry(mover, carried)
		m.step(w, e, mover)
	}
}

func (m *MovementSystem) step(w *ecs.World, e ecs.Entity, mover *component.Mover) {
	ctrl := mover.Controller
	if ctrl == nil {
		return
	}

	before := ctrl.Position()
	ctrl.Tick()
	mover.Delta = ctrl.Position().Sub(before)

	grounded := ctrl.Grounded()
	if grounded && !mover.WasGrounded {
		m.log.Debug("landed",
			zap.Stringer("entity", e),
			zap.Stringer("surface", ctrl.Contacts().Down.Surface))
		w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: e})
	}
	mover.WasGrounded = grounded

	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		box := ctrl.Body().Bounds()
		lo := box.Min()
		tr.X, tr.Y = lo.X, lo.Y
		tr.Width, tr.Height = box.Width(), box.Height()
	}
}

// carry moves a body standing on a platform by the platform's last delta.
// Horizontal carry stops at a wall the body already touches.
func carry(mover *component.Mover, carried map[*physics.Surface]cp.Vector) {
	if mover.Controller == nil || len(carried) == 0 {
		return
	}
	contacts := mover.Controller.Contacts()
	surface, ok := contacts.Down.Handle.(*physics.Surface)
	if !ok || !contacts.Down.Found() {
		return
	}
	delta, ok := carried[surface]
	if !ok {
		return
	}
	if delta.X < 0 && contacts.Left.Found() || delta.X > 0 && contacts.Right.Found() {
		delta.X = 0
	}
	mover.Controller.Body().Translate(delta)
}
