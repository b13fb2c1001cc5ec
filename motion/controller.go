package motion

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// minCutFactor is the smallest divisor CutJump accepts.
const minCutFactor = 1e-4

// Controller moves one body through a world of tagged surfaces. It is not
// safe for concurrent use: commands are buffered into the state between
// ticks and consumed by the next Tick.
type Controller struct {
	body   Body
	caster RayCaster
	tuning Tuning

	prober   Prober
	resolver Resolver
	velocity VelocityFunc

	state    State
	contacts ContactInfo
	ticks    uint64

	log *zap.Logger
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithVelocityFunc replaces the built-in acceleration model.
func WithVelocityFunc(f VelocityFunc) Option {
	return func(c *Controller) {
		if f != nil {
			c.velocity = f
		}
	}
}

func WithGravity(enabled bool) Option {
	return func(c *Controller) {
		c.state.GravityEnabled = enabled
	}
}

func NewController(body Body, caster RayCaster, tuning Tuning, opts ...Option) *Controller {
	c := &Controller{
		body:     body,
		caster:   caster,
		velocity: DefaultVelocity,
		log:      zap.NewNop(),
	}
	c.state = newState(tuning)
	for _, opt := range opts {
		opt(c)
	}
	c.SetTuning(tuning)
	return c
}

// SetTuning swaps the configuration. Call it between ticks only.
func (c *Controller) SetTuning(t Tuning) {
	if bad := t.Degenerate(); len(bad) > 0 {
		c.log.Warn("degenerate tuning, using safe fallbacks", zap.Strings("fields", bad))
	}
	prevAir := c.tuning.AirFriction
	c.tuning = t.Normalized()
	c.prober = newProber(c.caster, c.tuning)
	c.resolver = newResolver(c.caster, c.tuning)
	if c.state.AirFriction == prevAir {
		c.state.AirFriction = c.tuning.AirFriction
	}
}

// SetVelocityFunc installs a velocity strategy; nil restores the default.
func (c *Controller) SetVelocityFunc(f VelocityFunc) {
	if f == nil {
		f = DefaultVelocity
	}
	c.velocity = f
}

// Tick advances the controller by one fixed step.
func (c *Controller) Tick() {
	c.ticks++
	c.contacts = c.prober.Probe(c.body.Bounds())

	if c.state.Paused {
		c.state.Velocity = cp.Vector{}
		c.state.Facing = Intent{}
		c.state.FallThrough = false
		return
	}

	st := c.state
	st.Velocity = c.velocity(VelocityInput{
		State:    st,
		Contacts: c.contacts,
		Tuning:   c.tuning,
		Position: c.body.Bounds().Center,
		Tick:     c.ticks,
	})
	st.Jumped = false
	st.JumpCut = false
	st.Facing = facingOf(st.Velocity)

	st = c.resolver.Resolve(c.body, st)
	c.body.Translate(st.Velocity)
	st.Facing = facingOf(st.Velocity)

	if st.Grounded {
		st.AirFriction = c.tuning.AirFriction
		st.Jumping = false
	}
	c.state = st
}

// SetIntent stores the requested direction for the next tick.
func (c *Controller) SetIntent(horizontal, vertical float64) {
	c.state.Intent = NewIntent(horizontal, vertical)
}

// Jump launches the body at jump speed. It does not check whether a jump is
// allowed; callers gate double jumps themselves.
func (c *Controller) Jump() {
	_, speed, _ := c.tuning.JumpPhysics()
	c.state.Velocity.Y = speed
	c.state.Jumped = true
	c.state.Jumping = true
}

// CutJump divides the vertical velocity by factor while a jump is rising,
// giving variable jump height on early release.
func (c *Controller) CutJump(factor float64) {
	if !c.state.Jumping || factor < minCutFactor {
		return
	}
	c.state.Velocity.Y /= factor
	c.state.JumpCut = true
}

// WallJump pushes off a wall. A zero direction pushes away from whichever
// side is in contact; with no contact it does nothing.
func (c *Controller) WallJump(direction int) {
	if direction == 0 {
		switch {
		case c.contacts.Left.Found():
			direction = 1
		case c.contacts.Right.Found():
			direction = -1
		default:
			c.log.Debug("wall jump ignored: no wall contact")
			return
		}
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}

	_, speed, _ := c.tuning.JumpPhysics()
	c.state.Velocity.X = float64(direction) * c.tuning.WallJumpVelocity
	c.state.Velocity.Y = speed
	c.state.AirFriction = c.tuning.WallAirFriction
}

// RequestFallThrough drops through the one-way platform the body stands on.
// It is ignored unless the last probe found one directly below.
func (c *Controller) RequestFallThrough() {
	if !c.contacts.Down.Is(SurfaceOneWay) {
		c.log.Debug("fall-through ignored: not on a one-way platform",
			zap.Stringer("below", c.contacts.Down.Surface))
		return
	}
	c.state.FallThrough = true
}

func (c *Controller) SetGravityEnabled(enabled bool) {
	c.state.GravityEnabled = enabled
}

// Pause freezes the body until Resume.
func (c *Controller) Pause() {
	c.state.Paused = true
}

func (c *Controller) Resume() {
	c.state.Paused = false
}

func (c *Controller) State() State          { return c.state }
func (c *Controller) Contacts() ContactInfo { return c.contacts }
func (c *Controller) Velocity() cp.Vector   { return c.state.Velocity }
func (c *Controller) Facing() Intent        { return c.state.Facing }
func (c *Controller) Grounded() bool        { return c.state.Grounded }
func (c *Controller) Falling() bool         { return c.state.Falling }
func (c *Controller) Jumping() bool         { return c.state.Jumping }
func (c *Controller) Paused() bool          { return c.state.Paused }
func (c *Controller) Tuning() Tuning        { return c.tuning }
func (c *Controller) Body() Body            { return c.body }
func (c *Controller) Ticks() uint64         { return c.ticks }
func (c *Controller) Position() cp.Vector   { return c.body.Bounds().Center }
