package motion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetIntentNormalizes(t *testing.T) {
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning())

	c.SetIntent(-0.3, 7)
	assert.Equal(t, Intent{X: -1, Y: 1}, c.State().Intent)

	c.SetIntent(0, math.NaN())
	assert.Equal(t, Intent{}, c.State().Intent)
	assert.True(t, c.State().Intent.Idle())
}

func TestIdleVelocityDecays(t *testing.T) {
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning(), WithGravity(false))

	c.SetIntent(1, 0)
	for i := 0; i < 20; i++ {
		c.Tick()
	}
	require.Greater(t, c.Velocity().X, 3.9)
	assert.LessOrEqual(t, c.Velocity().X, 4.0)

	c.SetIntent(0, 0)
	for i := 0; i < 100; i++ {
		c.Tick()
	}
	assert.Less(t, math.Abs(c.Velocity().X), 1e-3)
	assert.Zero(t, c.Velocity().Y)
}

func TestJumpAndCut(t *testing.T) {
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning())

	c.Jump()
	assert.Equal(t, 1.0, c.Velocity().Y)
	assert.True(t, c.Jumping())
	assert.True(t, c.State().Jumped)

	c.CutJump(0)
	assert.Equal(t, 1.0, c.Velocity().Y, "tiny factors are ignored")

	c.CutJump(2)
	assert.Equal(t, 0.5, c.Velocity().Y)
	assert.True(t, c.State().JumpCut)

	c.Tick()
	assert.False(t, c.State().Jumped)
	assert.False(t, c.State().JumpCut)
}

func TestCutJumpNeedsActiveJump(t *testing.T) {
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning())

	c.WallJump(1)
	require.False(t, c.Jumping())
	c.CutJump(2)
	assert.Equal(t, 1.0, c.Velocity().Y)
	assert.False(t, c.State().JumpCut)
}

func TestLandingEndsJump(t *testing.T) {
	w := &testWorld{}
	w.addBox("ground", SurfaceGround, -10, -1, 10, 0)
	c := NewController(NewBoxBody(restingBox(0)), w, testTuning())
	c.Tick()

	c.Jump()
	require.True(t, c.Jumping())
	c.Tick()
	assert.True(t, c.Grounded())
	assert.False(t, c.Jumping())
}

func TestWallJumpDirection(t *testing.T) {
	cases := []struct {
		name      string
		wallMinX  float64
		wallMaxX  float64
		direction int
		wantVX    float64
		wantVY    float64
	}{
		{"infer_from_left_wall", -3, -0.51, 0, 3, 1},
		{"infer_from_right_wall", 0.51, 3, 0, -3, 1},
		{"explicit_is_sign_normalized", 0.51, 3, 5, 3, 1},
		{"explicit_negative", -3, -0.51, -2, -3, 1},
		{"no_wall_in_reach", 5, 6, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := &testWorld{}
			w.addBox("wall", SurfaceWall, tc.wallMinX, -10, tc.wallMaxX, 10)
			c := NewController(NewBoxBody(restingBox(0)), w, testTuning(), WithGravity(false))
			c.Tick()

			c.WallJump(tc.direction)
			assert.Equal(t, cp.Vector{X: tc.wantVX, Y: tc.wantVY}, c.Velocity())
			assert.False(t, c.Jumping())
		})
	}
}

func TestWallJumpSwapsAirFrictionUntilLanding(t *testing.T) {
	w := &testWorld{}
	w.addBox("ground", SurfaceGround, -10, -1, 10, 0)
	w.addBox("wall", SurfaceWall, -3, -10, -0.51, 10)
	c := NewController(NewBoxBody(restingBox(0)), w, testTuning())
	c.Tick()

	c.WallJump(0)
	assert.Equal(t, 0.05, c.State().AirFriction)

	c.Tick()
	require.True(t, c.Grounded())
	assert.Equal(t, 0.1, c.State().AirFriction)
}

func TestPauseFreezesBody(t *testing.T) {
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning())
	c.SetIntent(1, 0)
	c.Tick()
	before := c.Position()
	require.NotZero(t, c.Velocity().X)

	c.Pause()
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	assert.True(t, c.Paused())
	assert.Equal(t, before, c.Position())
	assert.Equal(t, cp.Vector{}, c.Velocity())
	assert.Equal(t, uint64(11), c.Ticks())

	c.Resume()
	c.Tick()
	assert.False(t, c.Paused())
	assert.NotEqual(t, before, c.Position())
}

func TestPauseDropsFallThrough(t *testing.T) {
	w := &testWorld{}
	w.addSegment("platform", SurfaceOneWay, cp.Vector{X: -10}, cp.Vector{X: 10})
	c := NewController(NewBoxBody(restingBox(0)), w, testTuning())
	c.Tick()
	c.RequestFallThrough()
	require.True(t, c.State().FallThrough)

	c.Pause()
	c.Tick()
	c.Resume()
	c.Tick()
	assert.True(t, c.Grounded())
	assert.InDelta(t, 0.51, c.Position().Y, 1e-9)
}

func TestCustomVelocityFunc(t *testing.T) {
	var seen []VelocityInput
	f := func(in VelocityInput) cp.Vector {
		seen = append(seen, in)
		return cp.Vector{X: 0.5}
	}
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning(), WithVelocityFunc(f))

	c.Jump()
	c.Tick()
	c.Tick()

	require.Len(t, seen, 2)
	assert.True(t, seen[0].State.Jumped)
	assert.Equal(t, uint64(1), seen[0].Tick)
	assert.False(t, seen[1].State.Jumped)
	assert.Equal(t, uint64(2), seen[1].Tick)
	assert.InDelta(t, 1.0, c.Position().X, 1e-12)
	assert.InDelta(t, 0.51, c.Position().Y, 1e-12)

	c.SetVelocityFunc(nil)
	c.Tick()
	assert.Len(t, seen, 2)
	assert.Less(t, c.Position().Y, 0.51)
}

func TestZeroJumpTimeDisablesGravity(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tn := testTuning()
	tn.JumpTime = 0
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, tn, WithLogger(zap.New(core)))

	require.Equal(t, 1, logs.FilterMessage("degenerate tuning, using safe fallbacks").Len())

	for i := 0; i < 10; i++ {
		c.Tick()
	}
	assert.Equal(t, restingBox(0).Center, c.Position())

	c.Jump()
	assert.Zero(t, c.Velocity().Y)
}

func TestSetTuningNormalizes(t *testing.T) {
	tn := testTuning()
	tn.VerticalRays = 0
	tn.HorizontalRays = -3
	tn.Margin = -1
	tn.TickDuration = 0
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, tn)

	got := c.Tuning()
	assert.Equal(t, 2, got.VerticalRays)
	assert.Equal(t, 2, got.HorizontalRays)
	assert.Zero(t, got.Margin)
	assert.Greater(t, got.TickDuration, 0.0)
	assert.ElementsMatch(t, []string{"vertical_rays", "horizontal_rays", "margin", "tick_duration"}, tn.Degenerate())
}

func TestSetTuningKeepsWallJumpFriction(t *testing.T) {
	c := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning())
	c.WallJump(1)

	tn := testTuning()
	tn.AirFriction = 0.3
	c.SetTuning(tn)
	assert.Equal(t, 0.05, c.State().AirFriction)

	c2 := NewController(NewBoxBody(restingBox(0)), &testWorld{}, testTuning())
	c2.SetTuning(tn)
	assert.Equal(t, 0.3, c2.State().AirFriction)
}

func TestGroundedAndFallingExclusive(t *testing.T) {
	w := &testWorld{}
	w.addBox("ground", SurfaceGround, -20, -1, 20, 0)
	w.addBox("left", SurfaceWall, -21, -1, -20, 20)
	w.addBox("right", SurfaceWall, 20, -1, 21, 20)
	w.addSegment("ledge", SurfaceOneWay, cp.Vector{X: -5, Y: 3}, cp.Vector{X: 5, Y: 3})
	w.addSegment("ramp", SurfaceSlope, cp.Vector{X: 8, Y: 0}, cp.Vector{X: 14, Y: 6})
	c := NewController(NewBoxBody(restingBox(0)), w, testTuning())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		c.SetIntent(float64(rng.Intn(3)-1), float64(rng.Intn(3)-1))
		switch rng.Intn(10) {
		case 0:
			c.Jump()
		case 1:
			c.WallJump(0)
		case 2:
			c.RequestFallThrough()
		case 3:
			c.CutJump(2)
		}
		c.Tick()
		st := c.State()
		require.False(t, st.Grounded && st.Falling, "tick %d", i)
		require.True(t, common.Finite(st.Velocity.X) && common.Finite(st.Velocity.Y), "tick %d", i)
	}
}
