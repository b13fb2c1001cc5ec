package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("prefabs: unknown spec format")

// LoadSpec reads a prefab and decodes it by extension: yaml for .yaml and
// .yml, toml for .toml.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := decode(filename, data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func decode(filename string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".toml":
		return toml.Unmarshal(data, out)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
}

// ControllerSpec describes a controlled body: its size, how it looks and
// the tuning its controller starts with.
type ControllerSpec struct {
	Name    string     `yaml:"name" toml:"name"`
	Size    SizeSpec   `yaml:"size" toml:"size"`
	Surface string     `yaml:"surface" toml:"surface"`
	Gravity *bool      `yaml:"gravity" toml:"gravity"`
	Script  string     `yaml:"script" toml:"script"`
	Jumps   int        `yaml:"jumps" toml:"jumps"`
	Color   HexColor   `yaml:"color" toml:"color"`
	Tuning  TuningSpec `yaml:"tuning" toml:"tuning"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

func LoadControllerSpec(filename string) (ControllerSpec, error) {
	spec, err := LoadSpec[ControllerSpec](filename)
	if err != nil {
		return spec, err
	}
	if _, err := spec.SurfaceType(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// SurfaceType is what other bodies see when their rays hit this one.
func (s ControllerSpec) SurfaceType() (motion.SurfaceType, error) {
	return motion.ParseSurfaceType(s.Surface)
}

// GravityEnabled defaults to true when the spec leaves it out.
func (s ControllerSpec) GravityEnabled() bool {
	return s.Gravity == nil || *s.Gravity
}

// Box places the body with its bottom-left corner at (x, y). Sizes left out
// of the spec fall back to one tile.
func (s ControllerSpec) Box(x, y float64) motion.Box {
	w, h := s.Size.Width, s.Size.Height
	if w <= 0 {
		w = 32
	}
	if h <= 0 {
		h = 32
	}
	return motion.NewBox(x, y, w, h)
}

// MotionTuning overlays the spec's tuning block onto motion.DefaultTuning.
func (s ControllerSpec) MotionTuning() motion.Tuning {
	return s.Tuning.Apply(motion.DefaultTuning())
}

// TuningSpec mirrors motion.Tuning. Fields left out keep the base value.
type TuningSpec struct {
	MaxSpeed           *float64 `yaml:"max_speed,omitempty" toml:"max_speed,omitempty"`
	GroundAcceleration *float64 `yaml:"ground_acceleration,omitempty" toml:"ground_acceleration,omitempty"`
	AirAcceleration    *float64 `yaml:"air_acceleration,omitempty" toml:"air_acceleration,omitempty"`
	GroundFriction     *float64 `yaml:"ground_friction,omitempty" toml:"ground_friction,omitempty"`
	AirFriction        *float64 `yaml:"air_friction,omitempty" toml:"air_friction,omitempty"`
	WallFriction       *float64 `yaml:"wall_friction,omitempty" toml:"wall_friction,omitempty"`
	WallAirFriction    *float64 `yaml:"wall_air_friction,omitempty" toml:"wall_air_friction,omitempty"`
	WallJumpVelocity   *float64 `yaml:"wall_jump_velocity,omitempty" toml:"wall_jump_velocity,omitempty"`
	JumpHeight         *float64 `yaml:"jump_height,omitempty" toml:"jump_height,omitempty"`
	JumpTime           *float64 `yaml:"jump_time,omitempty" toml:"jump_time,omitempty"`
	TerminalVelocity   *float64 `yaml:"terminal_velocity,omitempty" toml:"terminal_velocity,omitempty"`
	VerticalRays       *int     `yaml:"vertical_rays,omitempty" toml:"vertical_rays,omitempty"`
	HorizontalRays     *int     `yaml:"horizontal_rays,omitempty" toml:"horizontal_rays,omitempty"`
	Margin             *float64 `yaml:"margin,omitempty" toml:"margin,omitempty"`
	ProbeReach         *float64 `yaml:"probe_reach,omitempty" toml:"probe_reach,omitempty"`
	TickDuration       *float64 `yaml:"tick_duration,omitempty" toml:"tick_duration,omitempty"`
}

// Apply overlays the fields set in ts onto base.
func (ts TuningSpec) Apply(base motion.Tuning) motion.Tuning {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&base.MaxSpeed, ts.MaxSpeed)
	setF(&base.GroundAcceleration, ts.GroundAcceleration)
	setF(&base.AirAcceleration, ts.AirAcceleration)
	setF(&base.GroundFriction, ts.GroundFriction)
	setF(&base.AirFriction, ts.AirFriction)
	setF(&base.WallFriction, ts.WallFriction)
	setF(&base.WallAirFriction, ts.WallAirFriction)
	setF(&base.WallJumpVelocity, ts.WallJumpVelocity)
	setF(&base.JumpHeight, ts.JumpHeight)
	setF(&base.JumpTime, ts.JumpTime)
	setF(&base.TerminalVelocity, ts.TerminalVelocity)
	setF(&base.Margin, ts.Margin)
	setF(&base.ProbeReach, ts.ProbeReach)
	setF(&base.TickDuration, ts.TickDuration)
	if ts.VerticalRays != nil {
		base.VerticalRays = *ts.VerticalRays
	}
	if ts.HorizontalRays != nil {
		base.HorizontalRays = *ts.HorizontalRays
	}
	return base
}

// TuningSpecFrom fills every field from t.
func TuningSpecFrom(t motion.Tuning) TuningSpec {
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }
	return TuningSpec{
		MaxSpeed:           f(t.MaxSpeed),
		GroundAcceleration: f(t.GroundAcceleration),
		AirAcceleration:    f(t.AirAcceleration),
		GroundFriction:     f(t.GroundFriction),
		AirFriction:        f(t.AirFriction),
		WallFriction:       f(t.WallFriction),
		WallAirFriction:    f(t.WallAirFriction),
		WallJumpVelocity:   f(t.WallJumpVelocity),
		JumpHeight:         f(t.JumpHeight),
		JumpTime:           f(t.JumpTime),
		TerminalVelocity:   f(t.TerminalVelocity),
		VerticalRays:       i(t.VerticalRays),
		HorizontalRays:     i(t.HorizontalRays),
		Margin:             f(t.Margin),
		ProbeReach:         f(t.ProbeReach),
		TickDuration:       f(t.TickDuration),
	}
}

// MarshalTuningYAML renders t as a tuning block that can be pasted into a
// prefab.
func MarshalTuningYAML(t motion.Tuning) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]TuningSpec{"tuning": TuningSpecFrom(t)}); err != nil {
		return nil, fmt.Errorf("prefabs: marshal tuning: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("prefabs: marshal tuning: %w", err)
	}
	return buf.Bytes(), nil
}

// HexColor decodes "#rrggbb" or "#rrggbbaa" from yaml or toml.
type HexColor struct {
	color.Color
}

func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	return c.UnmarshalText([]byte(value.Value))
}

func (c *HexColor) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", text)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}
	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c, or fallback when the spec left the color out.
func (c HexColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

// PlatformProps are the level-entity properties of a scripted platform.
type PlatformProps struct {
	Spec    string         `yaml:"spec"`
	Script  string         `yaml:"script"`
	Width   float64        `yaml:"width"`
	Height  float64        `yaml:"height"`
	Surface string         `yaml:"surface"`
	Params  map[string]any `yaml:"params"`
}

// Size in world units; Width and Height are in tiles.
func (p PlatformProps) Size(tile float64) cp.Vector {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return cp.Vector{X: w * tile, Y: h * tile}
}
