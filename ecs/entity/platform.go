package entity

import (
	"fmt"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/script"
)

const defaultPlatformSpec = "platform.toml"

// NewPlatform builds a scripted platform from a level entity. The entity's
// props override the prefab's size, surface and script.
func NewPlatform(env Env, lvl *levels.Level, ent levels.Entity) (ecs.Entity, error) {
	props, err := prefabs.DecodeProps[prefabs.PlatformProps](ent.Props)
	if err != nil {
		return 0, fmt.Errorf("platform: props: %w", err)
	}

	specName := props.Spec
	if specName == "" {
		specName = defaultPlatformSpec
	}
	spec, err := prefabs.LoadControllerSpec(specName)
	if err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}

	surface, _ := spec.SurfaceType()
	if props.Surface != "" {
		if surface, err = motion.ParseSurfaceType(props.Surface); err != nil {
			return 0, fmt.Errorf("platform: %w", err)
		}
	}

	x, y := lvl.ToWorld(ent.X, ent.Y)
	box := spec.Box(x, y)
	if props.Width > 0 || props.Height > 0 {
		size := props.Size(common.TileSize)
		box = motion.NewBox(x, y, size.X, size.Y)
	}

	var opts []motion.Option
	var vs *script.VelocityScript
	scriptPath := props.Script
	if scriptPath == "" {
		scriptPath = spec.Script
	}
	if scriptPath != "" {
		src, err := prefabs.LoadScript(scriptPath)
		if err != nil {
			return 0, fmt.Errorf("platform: %w", err)
		}
		vs, err = script.NewVelocityScript(scriptPath, src, props.Params, env.logger().Named("script"))
		if err != nil {
			return 0, fmt.Errorf("platform: %w", err)
		}
		opts = append(opts, motion.WithVelocityFunc(vs.Func()))
	}

	e, mover, err := buildMover(env, specName, spec, box, surface, opts...)
	if err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	mover.Script = vs
	mover.ScriptPath = scriptPath

	if err := ecs.Add(env.World, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{}); err != nil {
		return 0, fmt.Errorf("platform: %w", err)
	}
	return e, nil
}
