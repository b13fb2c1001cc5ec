// Package sim assembles a playable session: the level's physics space, the
// ECS world with its entities, and the fixed-step systems. Hosts feed it
// input and draw what it holds.
package sim

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/telemetry"
	"go.uber.org/zap"
)

const DefaultLevel = "demo"

type Config struct {
	Level      string
	PlayerSpec string
	// Telemetry is the listen address of the websocket hub; empty disables it.
	Telemetry string
	// Watch enables hot reload of the prefabs directory.
	Watch bool
	Log   *zap.Logger
}

type Session struct {
	World  *ecs.World
	Space  *physics.Space
	Level  *levels.Level
	Player ecs.Entity
	Hub    *telemetry.Hub

	scheduler *ecs.Scheduler
	watcher   *prefabs.Watcher
	cancel    context.CancelFunc
	served    chan error
	log       *zap.Logger
}

func New(cfg Config) (*Session, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	name := cfg.Level
	if name == "" {
		name = DefaultLevel
	}

	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}

	s := &Session{
		World: ecs.NewWorld(),
		Space: physics.NewSpace(),
		Level: lvl,
		log:   log,
	}
	env := entity.Env{World: s.World, Space: s.Space, Log: log.Named("entity")}
	if s.Player, err = entity.LoadLevelToWorld(env, lvl, cfg.PlayerSpec); err != nil {
		return nil, err
	}

	var changes <-chan string
	if cfg.Watch {
		dirs := []string{"prefabs", filepath.Join("prefabs", "scripts")}
		if w, err := prefabs.NewWatcher(dirs...); err != nil {
			log.Warn("prefab hot reload disabled", zap.Strings("dirs", dirs), zap.Error(err))
		} else {
			s.watcher = w
			changes = w.Events
		}
	}

	if cfg.Telemetry != "" {
		s.Hub = telemetry.NewHub(log.Named("telemetry"))
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.served = make(chan error, 1)
		go func() {
			err := s.Hub.ListenAndServe(ctx, cfg.Telemetry)
			if err != nil {
				log.Error("telemetry server stopped", zap.String("addr", cfg.Telemetry), zap.Error(err))
			}
			s.served <- err
		}()
	}

	s.scheduler = ecs.NewScheduler(
		system.NewTuningReloadSystem(changes, log.Named("reload")),
		system.NewPlayerControllerSystem(log.Named("player")),
		system.NewMovementSystem(log.Named("movement")),
	)
	if s.Hub != nil {
		s.scheduler.Add(system.NewTelemetrySystem(s.Hub, log.Named("telemetry")))
	}
	return s, nil
}

// Step advances the simulation by one fixed tick using the input already
// stored on the player.
func (s *Session) Step() {
	if s.watcher != nil {
		select {
		case err, ok := <-s.watcher.Errors:
			if ok && err != nil {
				s.log.Warn("prefab watcher error", zap.Error(err))
			}
		default:
		}
	}
	s.scheduler.Update(s.World)
}

// Input is the player's input component; hosts overwrite it every frame.
func (s *Session) Input() *component.Input {
	in, _ := ecs.Get(s.World, s.Player, component.InputComponent.Kind())
	return in
}

func (s *Session) Controller() *motion.Controller {
	mover, ok := ecs.Get(s.World, s.Player, component.MoverComponent.Kind())
	if !ok {
		return nil
	}
	return mover.Controller
}

// WorldSize is the level extent in world units.
func (s *Session) WorldSize() (float64, float64) {
	return s.Level.WorldSize()
}

func (s *Session) Close() error {
	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
		s.watcher = nil
	}
	if s.cancel != nil {
		s.cancel()
		if err := <-s.served; err != nil {
			errs = append(errs, fmt.Errorf("sim: telemetry: %w", err))
		}
		s.cancel = nil
	}
	return errors.Join(errs...)
}
