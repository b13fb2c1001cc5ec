package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"golang.org/x/image/colornames"
)

const (
	DefaultPlayerSpec = "player.yaml"
	defaultMaxJumps   = 2
)

var defaultColor = colornames.Lightgray

// NewPlayerAt builds the player from specName with its feet at (x, y).
func NewPlayerAt(env Env, specName string, x, y float64) (ecs.Entity, error) {
	if specName == "" {
		specName = DefaultPlayerSpec
	}
	spec, err := prefabs.LoadControllerSpec(specName)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	surface, _ := spec.SurfaceType()

	e, _, err := buildMover(env, specName, spec, spec.Box(x, y), surface)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	jumps := spec.Jumps
	if jumps <= 0 {
		jumps = defaultMaxJumps
	}
	if err := ecs.Add(env.World, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(env.World, e, component.PlayerComponent.Kind(), &component.Player{MaxJumps: jumps}); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(env.World, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}
