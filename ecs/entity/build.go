package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

var errNoWorld = errors.New("entity: world or space is nil")

// Env is what the builders need besides the prefab itself.
type Env struct {
	World *ecs.World
	Space *physics.Space
	Log   *zap.Logger
}

func (env Env) logger() *zap.Logger {
	if env.Log == nil {
		return zap.NewNop()
	}
	return env.Log
}

// buildMover creates an entity with a kinematic body for box and a
// controller tuned by spec, plus the components every mover carries.
func buildMover(env Env, specName string, spec prefabs.ControllerSpec, box motion.Box, surface motion.SurfaceType, opts ...motion.Option) (ecs.Entity, *component.Mover, error) {
	if env.World == nil || env.Space == nil {
		return 0, nil, errNoWorld
	}

	// Keep the skin between the body and whatever it was placed on.
	tuning := spec.MotionTuning()
	box.Center.Y += tuning.Margin

	body := env.Space.AddKinematicBox(box, surface)
	opts = append([]motion.Option{
		motion.WithLogger(env.logger().Named(spec.Name)),
		motion.WithGravity(spec.GravityEnabled()),
	}, opts...)
	ctrl := motion.NewController(body, env.Space.CasterFor(body), tuning, opts...)

	mover := &component.Mover{Controller: ctrl, Body: body, Spec: specName}
	lo := box.Min()

	e := ecs.CreateEntity(env.World)
	if err := ecs.Add(env.World, e, component.MoverComponent.Kind(), mover); err != nil {
		return 0, nil, fmt.Errorf("entity: %s: %w", specName, err)
	}
	if err := ecs.Add(env.World, e, component.TransformComponent.Kind(), &component.Transform{
		X: lo.X, Y: lo.Y, Width: box.Width(), Height: box.Height(),
	}); err != nil {
		return 0, nil, fmt.Errorf("entity: %s: %w", specName, err)
	}
	if err := ecs.Add(env.World, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.Or(defaultColor),
	}); err != nil {
		return 0, nil, fmt.Errorf("entity: %s: %w", specName, err)
	}
	return e, mover, nil
}
