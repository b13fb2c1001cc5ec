package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

// cutJumpFactor divides the rise when jump is released early.
const cutJumpFactor = 2

// PlayerControllerSystem turns the player's Input into controller commands.
// The controller only moves bodies; the rules about when a jump is allowed
// live here.
type PlayerControllerSystem struct {
	log *zap.Logger
}

func NewPlayerControllerSystem(log *zap.Logger) *PlayerControllerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayerControllerSystem{log: log}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.MoverComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
		if mover.Controller == nil {
			continue
		}
		p.apply(w, e, player, input, mover)
	}
}

func (p *PlayerControllerSystem) apply(w *ecs.World, e ecs.Entity, player *component.Player, input *component.Input, mover *component.Mover) {
	ctrl := mover.Controller
	events := w.Events()

	switch {
	case input.Pause && !ctrl.Paused():
		ctrl.Pause()
		player.HoldingPause = true
		events.Push(ecs.Event{Type: ecs.EventPaused, Entity: e})
	case !input.Pause && player.HoldingPause:
		player.HoldingPause = false
		if ctrl.Paused() {
			ctrl.Resume()
			events.Push(ecs.Event{Type: ecs.EventResumed, Entity: e})
		}
	}

	if input.MoveX != player.IntentX || input.MoveY != player.IntentY {
		ctrl.SetIntent(input.MoveX, input.MoveY)
		player.IntentX = input.MoveX
		player.IntentY = input.MoveY
	}

	grounded := ctrl.Grounded()
	if grounded {
		player.AirJumps = 0
	}

	if input.JumpPressed {
		contacts := ctrl.Contacts()
		switch {
		case !grounded && (contacts.Left.Found() && input.MoveX < 0 || contacts.Right.Found() && input.MoveX > 0):
			ctrl.WallJump(0)
			events.Push(ecs.Event{Type: ecs.EventWallJumped, Entity: e})
		case grounded:
			ctrl.Jump()
			events.Push(ecs.Event{Type: ecs.EventJumped, Entity: e})
		case player.AirJumps < player.MaxJumps-1:
			player.AirJumps++
			ctrl.Jump()
			events.Push(ecs.Event{Type: ecs.EventJumped, Entity: e, Data: player.AirJumps})
		default:
			p.log.Debug("jump ignored: no jumps left", zap.Stringer("entity", e))
		}
	}

	if input.JumpReleased {
		ctrl.CutJump(cutJumpFactor)
	}

	if input.DownPressed {
		ctrl.RequestFallThrough()
		if ctrl.State().FallThrough {
			events.Push(ecs.Event{Type: ecs.EventFellThrough, Entity: e})
		}
	}
}
