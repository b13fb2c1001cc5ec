package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"go.uber.org/zap"
)

// LoadLevelToWorld builds the level's surfaces into the space and spawns
// the player and every platform it lists. It returns the player.
func LoadLevelToWorld(env Env, lvl *levels.Level, playerSpec string) (ecs.Entity, error) {
	if env.World == nil || env.Space == nil {
		return 0, errNoWorld
	}

	n, err := physics.BuildLevel(env.Space, lvl)
	if err != nil {
		return 0, err
	}

	x, y, err := lvl.Spawn()
	if err != nil {
		return 0, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	player, err := NewPlayerAt(env, playerSpec, x, y)
	if err != nil {
		return 0, err
	}

	platforms := lvl.Platforms()
	for _, ent := range platforms {
		if _, err := NewPlatform(env, lvl, ent); err != nil {
			return 0, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
	}

	env.logger().Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("surfaces", n),
		zap.Int("platforms", len(platforms)),
		zap.Float64("spawn_x", x),
		zap.Float64("spawn_y", y))
	return player, nil
}
