package motion

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSurface = errors.New("motion: unknown surface type")

// SurfaceType selects how the resolver reacts to a contact.
type SurfaceType uint8

const (
	SurfaceNone SurfaceType = iota
	SurfaceGround
	SurfaceWall
	SurfaceSlope
	SurfaceOneWay
)

func (s SurfaceType) String() string {
	switch s {
	case SurfaceNone:
		return "none"
	case SurfaceGround:
		return "ground"
	case SurfaceWall:
		return "wall"
	case SurfaceSlope:
		return "slope"
	case SurfaceOneWay:
		return "oneway"
	default:
		return fmt.Sprintf("surface(%d)", uint8(s))
	}
}

// ParseSurfaceType accepts the names used in level files and prefab specs.
func ParseSurfaceType(name string) (SurfaceType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return SurfaceNone, nil
	case "ground":
		return SurfaceGround, nil
	case "wall":
		return SurfaceWall, nil
	case "slope":
		return SurfaceSlope, nil
	case "oneway", "one_way", "one-way", "jumpthrough":
		return SurfaceOneWay, nil
	default:
		return SurfaceNone, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
	}
}

func (s SurfaceType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SurfaceType) UnmarshalText(text []byte) error {
	v, err := ParseSurfaceType(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
