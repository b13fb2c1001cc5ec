package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundJump(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))
	r.move(3)
	require.True(t, r.ctrl.Grounded())

	r.press(component.Input{Jump: true, JumpPressed: true})

	assert.True(t, r.ctrl.Jumping())
	assert.Greater(t, r.ctrl.Velocity().Y, 0.0)
	assert.Equal(t, 0, r.playerState().AirJumps)
	assert.Equal(t, []ecs.EventType{ecs.EventLanded, ecs.EventJumped}, eventTypes(r.w))
}

func TestOneJumpInTheAir(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))
	r.move(3)

	r.press(component.Input{Jump: true, JumpPressed: true})
	r.move(1)
	require.False(t, r.ctrl.Grounded())

	r.press(component.Input{Jump: true, JumpPressed: true})
	assert.Equal(t, 1, r.playerState().AirJumps)
	assert.Equal(t, 2, countEvents(r.w, ecs.EventJumped))

	r.move(1)
	vy := r.ctrl.Velocity().Y
	r.press(component.Input{Jump: true, JumpPressed: true})
	assert.Equal(t, vy, r.ctrl.Velocity().Y, "no jumps left")
	assert.Equal(t, 2, countEvents(r.w, ecs.EventJumped))
}

func TestAirJumpsResetOnLanding(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))
	r.playerState().AirJumps = 1
	r.move(3)

	r.press(component.Input{})
	assert.Equal(t, 0, r.playerState().AirJumps)
}

func TestJumpReleaseCutsRise(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))
	r.move(3)
	r.press(component.Input{Jump: true, JumpPressed: true})
	r.move(1)

	vy := r.ctrl.Velocity().Y
	r.press(component.Input{JumpReleased: true})
	assert.InDelta(t, vy/cutJumpFactor, r.ctrl.Velocity().Y, 1e-9)
}

func TestWallJumpNeedsPressIntoWall(t *testing.T) {
	wall := func(s *physics.Space) {
		s.AddBox(cp.BB{L: -40, B: -10, R: 0, T: 400}, motion.SurfaceWall)
	}

	cases := []struct {
		name   string
		moveX  float64
		wallUp bool
	}{
		{"into wall", -1, true},
		{"away from wall", 1, false},
		{"no direction", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t, 0.001, 200, wall)
			r.move(1)
			require.True(t, r.ctrl.Contacts().Left.Found())
			require.False(t, r.ctrl.Grounded())

			r.press(component.Input{MoveX: tc.moveX, Jump: true, JumpPressed: true})
			assert.Equal(t, tc.wallUp, countEvents(r.w, ecs.EventWallJumped) == 1)
			if tc.wallUp {
				assert.Equal(t, motion.DefaultTuning().WallJumpVelocity, r.ctrl.Velocity().X)
				assert.Equal(t, 0, r.playerState().AirJumps, "wall jumps are free")
			} else {
				assert.Equal(t, 1, r.playerState().AirJumps)
			}
		})
	}
}

func TestPauseWhileHeld(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))
	r.move(2)

	r.press(component.Input{Pause: true})
	assert.True(t, r.ctrl.Paused())
	r.press(component.Input{Pause: true})
	assert.Equal(t, 1, countEvents(r.w, ecs.EventPaused))

	r.press(component.Input{})
	assert.False(t, r.ctrl.Paused())
	assert.Equal(t, 1, countEvents(r.w, ecs.EventResumed))
}

func TestReleaseLeavesRemotePauseAlone(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))
	r.ctrl.Pause()

	r.press(component.Input{})
	assert.True(t, r.ctrl.Paused())
	assert.Empty(t, r.w.Events().Peek())
}

func TestIntentOnlyPushedOnChange(t *testing.T) {
	r := newRig(t, 0, 0, floor(motion.SurfaceGround))

	r.press(component.Input{MoveX: 1})
	assert.Equal(t, motion.Intent{X: 1}, r.ctrl.State().Intent)

	r.ctrl.SetIntent(-1, 0)
	r.press(component.Input{MoveX: 1})
	assert.Equal(t, motion.Intent{X: -1}, r.ctrl.State().Intent)

	r.press(component.Input{})
	assert.Equal(t, motion.Intent{}, r.ctrl.State().Intent)
}

func TestDownDropsThroughOneWay(t *testing.T) {
	cases := []struct {
		name    string
		kind    motion.SurfaceType
		dropped bool
	}{
		{"one-way", motion.SurfaceOneWay, true},
		{"ground", motion.SurfaceGround, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t, 0, 0, floor(tc.kind))
			r.move(3)
			require.True(t, r.ctrl.Grounded())

			r.press(component.Input{DownPressed: true})
			assert.Equal(t, tc.dropped, r.ctrl.State().FallThrough)
			assert.Equal(t, tc.dropped, countEvents(r.w, ecs.EventFellThrough) == 1)
		})
	}
}

func TestPlayerControllerSkipsEntitiesWithoutController(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{JumpPressed: true}))
	require.NoError(t, ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{}))

	assert.NotPanics(t, func() { NewPlayerControllerSystem(nil).Update(w) })
	assert.NotPanics(t, func() { NewPlayerControllerSystem(nil).Update(nil) })
}
