package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Intent is a sign-normalized direction request, each axis in {-1, 0, 1}.
type Intent struct {
	X int
	Y int
}

func NewIntent(horizontal, vertical float64) Intent {
	return Intent{X: common.Sign(horizontal), Y: common.Sign(vertical)}
}

func (i Intent) Idle() bool {
	return i.X == 0 && i.Y == 0
}

// State is the controller's motion state. The velocity model and the
// resolver each take a State and return the next one.
type State struct {
	Velocity cp.Vector
	Intent   Intent
	// Facing is the sign of each velocity component.
	Facing Intent

	Grounded bool
	Falling  bool
	Jumping  bool

	// Jumped and JumpCut are raised by commands and cleared after the next
	// velocity evaluation.
	Jumped  bool
	JumpCut bool

	GravityEnabled bool
	Paused         bool
	// FallThrough lets the next vertical phase ignore a one-way platform.
	FallThrough bool

	// AirFriction is the active air friction; a wall jump swaps in the wall
	// value until the body lands.
	AirFriction float64
}

func newState(t Tuning) State {
	return State{GravityEnabled: true, AirFriction: t.AirFriction}
}

func facingOf(v cp.Vector) Intent {
	return Intent{X: common.Sign(v.X), Y: common.Sign(v.Y)}
}

// Descending reports downward motion.
func (s State) Descending() bool {
	return s.Velocity.Y < 0
}
