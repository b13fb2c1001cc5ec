package system

import (
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

// TuningReloadSystem applies edited prefab specs and scripts between ticks.
// Paths arrive on a channel, usually prefabs.Watcher.Events; the system
// never blocks on it.
type TuningReloadSystem struct {
	changes <-chan string
	log     *zap.Logger
}

func NewTuningReloadSystem(changes <-chan string, log *zap.Logger) *TuningReloadSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &TuningReloadSystem{changes: changes, log: log}
}

func (t *TuningReloadSystem) Update(w *ecs.World) {
	if w == nil || t.changes == nil {
		return
	}
	for {
		select {
		case path, ok := <-t.changes:
			if !ok {
				t.changes = nil
				return
			}
			t.reload(w, path)
		default:
			return
		}
	}
}

func (t *TuningReloadSystem) reload(w *ecs.World, path string) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml":
		t.reloadSpec(w, name)
	case ".tengo":
		t.reloadScript(w, name)
	}
}

func (t *TuningReloadSystem) reloadSpec(w *ecs.World, name string) {
	targets := t.matching(w, func(m *component.Mover) bool {
		return m.Controller != nil && filepath.Base(m.Spec) == name
	})
	if len(targets) == 0 {
		return
	}
	spec, err := prefabs.LoadControllerSpec(name)
	if err != nil {
		t.log.Warn("tuning reload failed", zap.String("spec", name), zap.Error(err))
		return
	}
	tuning := spec.MotionTuning()
	for _, e := range targets {
		mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
		mover.Controller.SetTuning(tuning)
		mover.Controller.SetGravityEnabled(spec.GravityEnabled())
		t.log.Info("tuning reloaded", zap.String("spec", name), zap.Stringer("entity", e))
		w.Events().Push(ecs.Event{Type: ecs.EventTuningReload, Entity: e, Data: name})
	}
}

func (t *TuningReloadSystem) reloadScript(w *ecs.World, name string) {
	targets := t.matching(w, func(m *component.Mover) bool {
		return m.Script != nil && filepath.Base(m.ScriptPath) == name
	})
	if len(targets) == 0 {
		return
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		t.log.Warn("script reload failed", zap.String("script", name), zap.Error(err))
		return
	}
	for _, e := range targets {
		mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
		if err := mover.Script.Reload(src); err != nil {
			t.log.Warn("script reload failed", zap.String("script", name), zap.Error(err))
			continue
		}
		t.log.Info("script reloaded", zap.String("script", name), zap.Stringer("entity", e))
		w.Events().Push(ecs.Event{Type: ecs.EventTuningReload, Entity: e, Data: name})
	}
}

func (t *TuningReloadSystem) matching(w *ecs.World, match func(*component.Mover) bool) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, mover *component.Mover) {
		if match(mover) {
			out = append(out, e)
		}
	})
	return out
}
