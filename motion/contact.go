package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Hit is the result of one ray query. The zero value means "no hit".
type Hit struct {
	Surface  SurfaceType
	Distance float64
	Point    cp.Vector
	// Handle identifies the surface that was hit; it is owned by the world.
	Handle any
}

// Found reports whether h is a usable hit: a surface handle and a finite,
// non-negative distance.
func (h Hit) Found() bool {
	return h.Handle != nil && h.Distance >= 0 && common.Finite(h.Distance)
}

// Is reports whether h was found and hit a surface of type t.
func (h Hit) Is(t SurfaceType) bool {
	return h.Found() && h.Surface == t
}

type Side uint8

const (
	SideUp Side = iota
	SideDown
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideUp:
		return "up"
	case SideDown:
		return "down"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// ContactInfo holds the closest hit on each side of the body.
type ContactInfo struct {
	Up    Hit
	Down  Hit
	Left  Hit
	Right Hit
}

func (c ContactInfo) Get(side Side) Hit {
	switch side {
	case SideUp:
		return c.Up
	case SideDown:
		return c.Down
	case SideLeft:
		return c.Left
	case SideRight:
		return c.Right
	default:
		return Hit{}
	}
}

func (c ContactInfo) Touching(side Side) bool {
	return c.Get(side).Found()
}

// TouchingWall reports a contact on either horizontal side, whatever its
// surface type.
func (c ContactInfo) TouchingWall() bool {
	return c.Left.Found() || c.Right.Found()
}
