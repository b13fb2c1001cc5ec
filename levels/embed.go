package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrNoSpawn = errors.New("levels: no player spawn")

// Tile codes of physics layers.
const (
	TileEmpty = iota
	TileGround
	TileWall
	TileSlopeRight // rises toward +x
	TileSlopeLeft  // rises toward -x
	TileOneWay
)

// Level is a tile grid whose rows run top to bottom, as authored. Entity
// positions are tile coordinates in the same orientation.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Load reads a level from levels/ on disk, falling back to the embedded
// copy. A name with a directory component is read from that path only.
func Load(name string) (*Level, error) {
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func read(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	if strings.ContainsAny(filepath.ToSlash(name), "/") && !strings.HasPrefix(filepath.ToSlash(name), "levels/") {
		return os.ReadFile(name)
	}
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if data, err := os.ReadFile(filepath.Join("levels", clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, clean)
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("bad size %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// PhysicsLayers returns the layers that produce surfaces. A layer without
// metadata counts as physical.
func (l *Level) PhysicsLayers() [][]int {
	var out [][]int
	for i, layer := range l.Layers {
		if i < len(l.LayerMeta) && !l.LayerMeta[i].Physics {
			continue
		}
		out = append(out, layer)
	}
	return out
}

// WorldSize is the level extent in world units.
func (l *Level) WorldSize() (w, h float64) {
	return float64(l.Width * common.TileSize), float64(l.Height * common.TileSize)
}

// ToWorld converts a tile cell to the world position of its bottom-left
// corner, with y pointing up.
func (l *Level) ToWorld(col, row int) (x, y float64) {
	return float64(col * common.TileSize), float64((l.Height - 1 - row) * common.TileSize)
}

// Spawn is the world position of the first player entity.
func (l *Level) Spawn() (x, y float64, err error) {
	for _, e := range l.Entities {
		if e.Type == "player" {
			x, y = l.ToWorld(e.X, e.Y)
			return x, y, nil
		}
	}
	return 0, 0, ErrNoSpawn
}

func (l *Level) Platforms() []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == "platform" {
			out = append(out, e)
		}
	}
	return out
}
