package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/script"
)

// Mover is an entity driven by a motion controller.
type Mover struct {
	Controller *motion.Controller
	Body       *physics.KinematicBody
	// Spec is the prefab the tuning came from; reloads match on it.
	Spec string
	// Script is set for bodies with a scripted velocity.
	Script     *script.VelocityScript
	ScriptPath string

	WasGrounded bool
	// Delta is how far the body moved during the last tick.
	Delta cp.Vector
}

var MoverComponent = NewComponent[Mover]()
