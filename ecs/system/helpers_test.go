package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/physics"
	"github.com/stretchr/testify/require"
)

type testRig struct {
	w      *ecs.World
	space  *physics.Space
	player ecs.Entity
	ctrl   *motion.Controller
}

// newRig places a 24x30 player with its feet at (x, y) in a space built by
// setup.
func newRig(t *testing.T, x, y float64, setup func(s *physics.Space)) *testRig {
	t.Helper()
	s := physics.NewSpace()
	if setup != nil {
		setup(s)
	}

	tn := motion.DefaultTuning()
	body := s.AddKinematicBox(motion.NewBox(x, y+tn.Margin, 24, 30), motion.SurfaceNone)
	ctrl := motion.NewController(body, s.CasterFor(body), tn)

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MaxJumps: 2}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{
		Controller: ctrl,
		Body:       body,
		Spec:       "player.yaml",
	}))
	return &testRig{w: w, space: s, player: e, ctrl: ctrl}
}

func floor(kind motion.SurfaceType) func(s *physics.Space) {
	return func(s *physics.Space) {
		if kind == motion.SurfaceOneWay {
			s.AddSegment(cp.Vector{X: -500}, cp.Vector{X: 500}, 0, kind)
			return
		}
		s.AddBox(cp.BB{L: -500, B: -10, R: 500, T: 0}, kind)
	}
}

func (r *testRig) input() *component.Input {
	in, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	return in
}

func (r *testRig) playerState() *component.Player {
	p, _ := ecs.Get(r.w, r.player, component.PlayerComponent.Kind())
	return p
}

func (r *testRig) move(n int) {
	ms := NewMovementSystem(nil)
	for i := 0; i < n; i++ {
		ms.Update(r.w)
	}
}

// press runs the controller system with in as this frame's input.
func (r *testRig) press(in component.Input) {
	*r.input() = in
	NewPlayerControllerSystem(nil).Update(r.w)
}

func eventTypes(w *ecs.World) []ecs.EventType {
	var out []ecs.EventType
	for _, evt := range w.Events().Peek() {
		out = append(out, evt.Type)
	}
	return out
}

func countEvents(w *ecs.World, typ ecs.EventType) int {
	n := 0
	for _, evt := range w.Events().Peek() {
		if evt.Type == typ {
			n++
		}
	}
	return n
}
