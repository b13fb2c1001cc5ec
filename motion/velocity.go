package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// VelocityInput is everything a velocity strategy may read.
type VelocityInput struct {
	State    State
	Contacts ContactInfo
	Tuning   Tuning
	Position cp.Vector
	Tick     uint64
}

// VelocityFunc produces the next velocity. DefaultVelocity is the built-in
// acceleration model; scripted bodies install their own.
type VelocityFunc func(in VelocityInput) cp.Vector

// Ease moves v toward target by factor f in a single lerp step.
func Ease(v, target, f float64) float64 {
	return common.Lerp(v, target, f)
}

// DefaultVelocity is the acceleration/friction/gravity model.
func DefaultVelocity(in VelocityInput) cp.Vector {
	st, t := in.State, in.Tuning

	friction := st.AirFriction
	accel := t.AirAcceleration
	if st.Grounded {
		friction = t.GroundFriction
		accel = t.GroundAcceleration
	}

	vx := axisVelocity(st.Velocity.X, st.Intent.X, t.MaxSpeed, friction, accel)

	var vy float64
	gravity, _, ok := t.JumpPhysics()
	if st.GravityEnabled && ok {
		// any wall contact slows the fall, regardless of which way the body
		// is pushing
		if in.Contacts.TouchingWall() && st.Descending() {
			gravity = common.Clamp(gravity-t.WallFriction, 0, gravity)
		}
		vy = Ease(st.Velocity.Y, -t.TerminalVelocity, gravity)
	} else {
		vy = axisVelocity(st.Velocity.Y, st.Intent.Y, t.MaxSpeed, friction, t.GroundAcceleration)
	}

	return cp.Vector{X: vx, Y: vy}
}

// axisVelocity brakes when there is no intent, when the intent opposes the
// current motion or when the body is already over max speed; otherwise it
// accelerates toward intent*maxSpeed.
func axisVelocity(v float64, intent int, maxSpeed, friction, accel float64) float64 {
	opposing := (v < 0 && intent > 0) || (v > 0 && intent < 0)
	tooFast := v > maxSpeed || v < -maxSpeed
	if intent == 0 || opposing || tooFast {
		return Ease(v, 0, friction)
	}
	return Ease(v, float64(intent)*maxSpeed, accel)
}
