package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/telemetry"
	"go.uber.org/zap"
)

// TelemetrySystem runs last: it publishes the player's state for this
// tick, then applies the commands remote clients sent since the previous
// one so they take effect on the next tick.
type TelemetrySystem struct {
	hub *telemetry.Hub
	log *zap.Logger
}

func NewTelemetrySystem(hub *telemetry.Hub, log *zap.Logger) *TelemetrySystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &TelemetrySystem{hub: hub, log: log}
}

func (t *TelemetrySystem) Update(w *ecs.World) {
	if w == nil || t.hub == nil {
		return
	}

	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		t.hub.Drain()
		return
	}
	mover, ok := ecs.Get(w, e, component.MoverComponent.Kind())
	if !ok || mover.Controller == nil {
		t.hub.Drain()
		return
	}

	var events []string
	for _, evt := range w.Events().Peek() {
		if evt.Entity == e {
			events = append(events, string(evt.Type))
		}
	}
	if t.hub.Subscribers() > 0 {
		if err := t.hub.Publish(telemetry.SnapshotOf(mover.Controller, events)); err != nil {
			t.log.Debug("snapshot publish failed", zap.Error(err))
		}
	}

	for _, cmd := range t.hub.Drain() {
		if err := telemetry.Apply(cmd, mover.Controller); err != nil {
			t.log.Warn("remote command rejected", zap.String("type", cmd.Type), zap.Error(err))
		}
	}
}
