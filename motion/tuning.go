package motion

import (
	"math"

	"github.com/milk9111/platformer/common"
)

// Tuning is the per-session configuration of a controller. Speeds are in
// world units per tick, factors are lerp weights in [0, 1].
type Tuning struct {
	MaxSpeed           float64
	GroundAcceleration float64
	AirAcceleration    float64
	GroundFriction     float64
	AirFriction        float64

	WallFriction     float64
	WallAirFriction  float64
	WallJumpVelocity float64

	// JumpHeight and JumpTime (seconds to apex) derive gravity and jump
	// speed each tick, so the arc does not depend on the tick rate.
	JumpHeight       float64
	JumpTime         float64
	TerminalVelocity float64

	VerticalRays   int
	HorizontalRays int
	// Margin is the skin kept between the body and a surface.
	Margin float64
	// ProbeReach is how far past the skin the contact probe looks.
	ProbeReach float64
	// TickDuration is the fixed simulation step in seconds.
	TickDuration float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxSpeed:           4,
		GroundAcceleration: 0.25,
		AirAcceleration:    0.1,
		GroundFriction:     0.3,
		AirFriction:        0.05,
		WallFriction:       0.04,
		WallAirFriction:    0.02,
		WallJumpVelocity:   5,
		JumpHeight:         1000,
		JumpTime:           3,
		TerminalVelocity:   10,
		VerticalRays:       4,
		HorizontalRays:     4,
		Margin:             0.01,
		ProbeReach:         0.01,
		TickDuration:       common.FixedDelta,
	}
}

// Normalized returns a copy that is safe to simulate with: ray counts of at
// least two, non-negative margins and a positive tick duration.
func (t Tuning) Normalized() Tuning {
	if t.VerticalRays < minRays {
		t.VerticalRays = minRays
	}
	if t.HorizontalRays < minRays {
		t.HorizontalRays = minRays
	}
	if t.Margin < 0 || !common.Finite(t.Margin) {
		t.Margin = 0
	}
	if t.ProbeReach < 0 || !common.Finite(t.ProbeReach) {
		t.ProbeReach = 0
	}
	if t.TickDuration <= 0 || !common.Finite(t.TickDuration) {
		t.TickDuration = common.FixedDelta
	}
	return t
}

// Degenerate lists the fields Normalized or JumpPhysics had to work around.
func (t Tuning) Degenerate() []string {
	var out []string
	if t.VerticalRays < minRays {
		out = append(out, "vertical_rays")
	}
	if t.HorizontalRays < minRays {
		out = append(out, "horizontal_rays")
	}
	if t.Margin < 0 {
		out = append(out, "margin")
	}
	if t.TickDuration <= 0 {
		out = append(out, "tick_duration")
	}
	if t.JumpTime <= 0 {
		out = append(out, "jump_time")
	}
	return out
}

// JumpPhysics derives the per-tick gravity and the initial jump speed.
// ok is false when JumpTime is not positive; gravity is then off and the
// jump speed is zero.
func (t Tuning) JumpPhysics() (gravity, jumpSpeed float64, ok bool) {
	if t.JumpTime <= 0 || t.TickDuration <= 0 {
		return 0, 0, false
	}
	ticksToApex := t.JumpTime / t.TickDuration
	gravity = 2 * t.JumpHeight / (ticksToApex * ticksToApex)
	if !common.Finite(gravity) || gravity < 0 {
		return 0, 0, false
	}
	return gravity, math.Sqrt(2 * gravity * t.JumpHeight), true
}
