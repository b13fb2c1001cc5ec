package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadControllerSpec("player.yaml")
	require.NoError(t, err)

	assert.Equal(t, "player", spec.Name)
	assert.Equal(t, 2, spec.Jumps)
	assert.True(t, spec.GravityEnabled())
	surface, err := spec.SurfaceType()
	require.NoError(t, err)
	assert.Equal(t, motion.SurfaceNone, surface)

	tn := spec.MotionTuning()
	assert.Equal(t, 4.0, tn.MaxSpeed)
	assert.Equal(t, 0.5, tn.ProbeReach)
	assert.Equal(t, common.FixedDelta, tn.TickDuration, "unset fields keep defaults")

	box := spec.Box(10, 20)
	assert.Equal(t, 24.0, box.Width())
	assert.Equal(t, 30.0, box.Height())
	assert.Equal(t, 10.0, box.Min().X)
}

func TestLoadPlatformSpecFromTOML(t *testing.T) {
	spec, err := LoadControllerSpec("prefabs/platform.toml")
	require.NoError(t, err)

	assert.False(t, spec.GravityEnabled())
	surface, err := spec.SurfaceType()
	require.NoError(t, err)
	assert.Equal(t, motion.SurfaceOneWay, surface)
	assert.Equal(t, "platform.tengo", spec.Script)
	assert.Equal(t, SizeSpec{Width: 96, Height: 16}, spec.Size)

	tn := spec.MotionTuning()
	assert.Equal(t, 1.5, tn.MaxSpeed)
	assert.Equal(t, 2, tn.HorizontalRays)
	assert.Equal(t, motion.DefaultTuning().JumpHeight, tn.JumpHeight)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xb7, B: 0x4d, A: 0xff}, spec.Color.Color)
}

func TestDecodeUnknownFormat(t *testing.T) {
	var spec ControllerSpec
	err := decode("player.json", []byte(`{}`), &spec)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestLoadMissingSpec(t *testing.T) {
	_, err := LoadControllerSpec("ghost.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load ghost.yaml")
}

func TestBadSurfaceRejected(t *testing.T) {
	var spec ControllerSpec
	require.NoError(t, yaml.Unmarshal([]byte("surface: lava\n"), &spec))
	_, err := spec.SurfaceType()
	assert.True(t, errors.Is(err, motion.ErrUnknownSurface))
}

func TestHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"#123", nil, true},
		{"#zz0000", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var c HexColor
			err := c.UnmarshalText([]byte(tc.in))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Color)
		})
	}

	var fromTOML struct {
		Color HexColor `toml:"color"`
	}
	_, err := toml.Decode(`color = "#ffffff"`, &fromTOML)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, fromTOML.Color.Color)

	assert.Equal(t, color.White, HexColor{}.Or(color.White))
}

func TestTuningExportReloads(t *testing.T) {
	tn := motion.DefaultTuning()
	tn.MaxSpeed = 6.5
	tn.VerticalRays = 7

	data, err := MarshalTuningYAML(tn)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_speed: 6.5")

	var spec ControllerSpec
	require.NoError(t, yaml.Unmarshal(data, &spec))
	assert.Equal(t, tn, spec.MotionTuning())
}

func TestDecodeProps(t *testing.T) {
	raw := map[string]any{
		"script":  "platform.tengo",
		"width":   3.0,
		"surface": "oneway",
		"params":  map[string]any{"speed": 1.5},
	}
	props, err := DecodeProps[PlatformProps](raw)
	require.NoError(t, err)
	assert.Equal(t, "platform.tengo", props.Script)
	assert.Equal(t, 1.5, props.Params["speed"])
	assert.Equal(t, 96.0, props.Size(32).X)
	assert.Equal(t, 32.0, props.Size(32).Y)

	empty, err := DecodeProps[PlatformProps](nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Script)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"platform.tengo", "scripts/platform.tengo", "prefabs/scripts/platform.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "velocity :=")
	}
}
