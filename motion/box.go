package motion

import "github.com/jakecoffman/cp"

// Box is an axis-aligned bounding box stored as center and half extents.
type Box struct {
	Center cp.Vector
	Half   cp.Vector
}

// NewBox builds a box from its bottom-left corner and size.
func NewBox(x, y, width, height float64) Box {
	return Box{
		Center: cp.Vector{X: x + width/2, Y: y + height/2},
		Half:   cp.Vector{X: width / 2, Y: height / 2},
	}
}

func (b Box) Min() cp.Vector { return b.Center.Sub(b.Half) }
func (b Box) Max() cp.Vector { return b.Center.Add(b.Half) }

func (b Box) Width() float64  { return b.Half.X * 2 }
func (b Box) Height() float64 { return b.Half.Y * 2 }

// Translate returns the box moved by delta.
func (b Box) Translate(delta cp.Vector) Box {
	b.Center = b.Center.Add(delta)
	return b
}

func (b Box) BB() cp.BB {
	lo, hi := b.Min(), b.Max()
	return cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}
}

// Body is the transform the controller drives: it reads the bounds and
// writes relative translations.
type Body interface {
	Bounds() Box
	Translate(delta cp.Vector)
}

// BoxBody is a Body with no backing shape.
type BoxBody struct {
	Box Box
}

func NewBoxBody(box Box) *BoxBody {
	return &BoxBody{Box: box}
}

func (b *BoxBody) Bounds() Box {
	return b.Box
}

func (b *BoxBody) Translate(delta cp.Vector) {
	b.Box = b.Box.Translate(delta)
}
