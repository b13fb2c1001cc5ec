// Package script runs tengo programs as velocity strategies for scripted
// bodies such as moving platforms.
package script

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
	"go.uber.org/zap"
)

var ErrBadResult = errors.New("script: velocity must return [vx, vy]")

// The program must define velocity(state, memory). memory is a map that
// survives between ticks; params holds the values the level passed in.
const velocityDispatch = `
__result = velocity(__state, __memory)
`

// errorLogEvery limits repeated runtime errors to one log line per this
// many failures.
const errorLogEvery = 600

type VelocityScript struct {
	name     string
	params   map[string]any
	compiled *tengo.Compiled
	memory   *tengo.Map
	failures int
	log      *zap.Logger
}

func NewVelocityScript(name string, src []byte, params map[string]any, log *zap.Logger) (*VelocityScript, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &VelocityScript{
		name:   name,
		params: params,
		memory: &tengo.Map{Value: map[string]tengo.Object{}},
		log:    log,
	}
	if err := s.Reload(src); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload recompiles the program. Memory is kept, so a running platform
// continues from where it was.
func (s *VelocityScript) Reload(src []byte) error {
	full := make([]byte, 0, len(src)+len(velocityDispatch))
	full = append(full, src...)
	full = append(full, velocityDispatch...)

	params := s.params
	if params == nil {
		params = map[string]any{}
	}

	script := tengo.NewScript(full)
	for name, value := range map[string]any{
		"params":   params,
		"__state":  map[string]any{},
		"__memory": map[string]any{},
		"__result": nil,
	} {
		if err := script.Add(name, value); err != nil {
			return fmt.Errorf("script: %s: add %s: %w", s.name, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", s.name, err)
	}
	s.compiled = compiled
	s.failures = 0
	return nil
}

func (s *VelocityScript) Name() string { return s.name }

// Velocity runs the program once for in.
func (s *VelocityScript) Velocity(in motion.VelocityInput) (cp.Vector, error) {
	if err := s.compiled.Set("__state", stateObject(in)); err != nil {
		return cp.Vector{}, fmt.Errorf("script: %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__memory", s.memory); err != nil {
		return cp.Vector{}, fmt.Errorf("script: %s: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return cp.Vector{}, fmt.Errorf("script: run %s: %w", s.name, err)
	}
	v, err := toVector(s.compiled.Get("__result").Object())
	if err != nil {
		return cp.Vector{}, fmt.Errorf("%w (%s)", err, s.name)
	}
	return v, nil
}

// Func adapts the script to motion.VelocityFunc. A failing run stops the
// body for that tick.
func (s *VelocityScript) Func() motion.VelocityFunc {
	return func(in motion.VelocityInput) cp.Vector {
		v, err := s.Velocity(in)
		if err != nil {
			if s.failures%errorLogEvery == 0 {
				s.log.Error("velocity script failed", zap.String("script", s.name), zap.Error(err), zap.Int("failures", s.failures+1))
			}
			s.failures++
			return cp.Vector{}
		}
		return v
	}
}

func stateObject(in motion.VelocityInput) map[string]any {
	st := in.State
	return map[string]any{
		"tick":      int64(in.Tick),
		"x":         in.Position.X,
		"y":         in.Position.Y,
		"vx":        st.Velocity.X,
		"vy":        st.Velocity.Y,
		"intent_x":  st.Intent.X,
		"intent_y":  st.Intent.Y,
		"grounded":  st.Grounded,
		"falling":   st.Falling,
		"jumping":   st.Jumping,
		"gravity":   st.GravityEnabled,
		"max_speed": in.Tuning.MaxSpeed,
		"contacts": map[string]any{
			"up":    in.Contacts.Up.Surface.String(),
			"down":  in.Contacts.Down.Surface.String(),
			"left":  in.Contacts.Left.Surface.String(),
			"right": in.Contacts.Right.Surface.String(),
		},
	}
}

func toVector(obj tengo.Object) (cp.Vector, error) {
	var items []tengo.Object
	switch v := obj.(type) {
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	default:
		return cp.Vector{}, ErrBadResult
	}
	if len(items) != 2 {
		return cp.Vector{}, ErrBadResult
	}
	x, okX := tengo.ToFloat64(items[0])
	y, okY := tengo.ToFloat64(items[1])
	if !okX || !okY {
		return cp.Vector{}, ErrBadResult
	}
	return cp.Vector{X: x, Y: y}, nil
}
