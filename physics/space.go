// Package physics backs the motion controller with a chipmunk space. Static
// level geometry and kinematic platforms are cp shapes tagged with a
// surface type; ray queries go through cp's segment query.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
)

const (
	collisionTypeSurface cp.CollisionType = iota + 1
	collisionTypeBody
)

// categoryBody marks shapes of moving bodies that are not surfaces
// themselves. Ray queries never report them.
const categoryBody uint = 1 << 1

func queryFilter(group uint) cp.ShapeFilter {
	f := cp.SHAPE_FILTER_ALL
	f.Group = group
	f.Mask &^= categoryBody
	return f
}

// Surface is the handle carried by every shape and returned in motion.Hit.
type Surface struct {
	ID    int
	Type  motion.SurfaceType
	Shape *cp.Shape
	// Outline holds the vertices of a static surface for drawing. Kinematic
	// surfaces leave it empty and are drawn from their bounds.
	Outline []cp.Vector
}

type Space struct {
	space     *cp.Space
	surfaces  []*Surface
	nextGroup uint
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 10
	return &Space{space: space}
}

func (s *Space) CP() *cp.Space { return s.space }

func (s *Space) Surfaces() []*Surface { return s.surfaces }

func (s *Space) add(shape *cp.Shape, kind motion.SurfaceType, outline ...cp.Vector) *Surface {
	surf := &Surface{ID: len(s.surfaces) + 1, Type: kind, Shape: shape, Outline: outline}
	shape.UserData = surf
	shape.SetCollisionType(collisionTypeSurface)
	shape.SetFriction(0.8)
	s.space.AddShape(shape)
	s.surfaces = append(s.surfaces, surf)
	return surf
}

// AddBox adds a static axis-aligned surface.
func (s *Space) AddBox(bb cp.BB, kind motion.SurfaceType) *Surface {
	return s.add(cp.NewBox2(s.space.StaticBody, bb, 0), kind,
		cp.Vector{X: bb.L, Y: bb.B}, cp.Vector{X: bb.R, Y: bb.B},
		cp.Vector{X: bb.R, Y: bb.T}, cp.Vector{X: bb.L, Y: bb.T})
}

// AddSlope adds a static triangle. Vertices must be counter-clockwise.
func (s *Space) AddSlope(a, b, c cp.Vector) *Surface {
	verts := []cp.Vector{a, b, c}
	return s.add(cp.NewPolyShapeRaw(s.space.StaticBody, 3, verts, 0), motion.SurfaceSlope, verts...)
}

func (s *Space) AddSegment(a, b cp.Vector, radius float64, kind motion.SurfaceType) *Surface {
	return s.add(cp.NewSegment(s.space.StaticBody, a, b, radius), kind, a, b)
}

// AddKinematicBox adds a box driven by a controller rather than the solver.
// Its shape gets its own filter group so the body's rays never see itself.
// With SurfaceNone the box is invisible to every ray query.
func (s *Space) AddKinematicBox(box motion.Box, kind motion.SurfaceType) *KinematicBody {
	body := cp.NewKinematicBody()
	body.SetPosition(box.Center)
	s.space.AddBody(body)

	shape := cp.NewBox(body, box.Width(), box.Height(), 0)
	s.nextGroup++
	own := cp.SHAPE_FILTER_ALL
	own.Group = s.nextGroup
	if kind == motion.SurfaceNone {
		own.Categories = categoryBody
	}
	shape.SetFilter(own)

	surf := s.add(shape, kind)
	if kind == motion.SurfaceNone {
		shape.SetCollisionType(collisionTypeBody)
	}
	return &KinematicBody{
		space:   s,
		body:    body,
		shape:   shape,
		half:    box.Half,
		surface: surf,
		filter:  queryFilter(own.Group),
	}
}

// Cast implements motion.RayCaster over every shape in the space.
func (s *Space) Cast(origin, dir cp.Vector, maxDist float64) (motion.Hit, bool) {
	return s.cast(origin, dir, maxDist, queryFilter(0))
}

// CasterFor returns a caster that skips the shape of body.
func (s *Space) CasterFor(body *KinematicBody) motion.RayCaster {
	if body == nil {
		return s
	}
	filter := body.filter
	return motion.CasterFunc(func(origin, dir cp.Vector, maxDist float64) (motion.Hit, bool) {
		return s.cast(origin, dir, maxDist, filter)
	})
}

func (s *Space) cast(origin, dir cp.Vector, maxDist float64, filter cp.ShapeFilter) (motion.Hit, bool) {
	if maxDist <= 0 {
		return motion.Hit{}, false
	}
	end := origin.Add(dir.Mult(maxDist))
	info := s.space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return motion.Hit{}, false
	}
	surf, ok := info.Shape.UserData.(*Surface)
	if !ok || surf == nil {
		return motion.Hit{}, false
	}
	return motion.Hit{
		Surface:  surf.Type,
		Distance: info.Alpha * maxDist,
		Point:    info.Point,
		Handle:   surf,
	}, true
}
