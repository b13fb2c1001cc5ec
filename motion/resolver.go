package motion

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Resolver sweeps a body along its velocity one axis at a time, clamping it
// against the surfaces it would run into.
type Resolver struct {
	Caster         RayCaster
	VerticalRays   int
	HorizontalRays int
	Margin         float64
}

func newResolver(caster RayCaster, t Tuning) Resolver {
	return Resolver{
		Caster:         caster,
		VerticalRays:   t.VerticalRays,
		HorizontalRays: t.HorizontalRays,
		Margin:         t.Margin,
	}
}

// Resolve runs the horizontal then the vertical phase. Both phases cast from
// the bounds the body had when the tick started, so a slope snap in the
// horizontal phase is not undone by the vertical one. Corrections are
// applied to body directly; the returned state carries the clamped velocity
// the caller translates by.
func (r Resolver) Resolve(body Body, st State) State {
	start := body.Bounds()
	st = r.horizontal(body, start, st)
	st = r.vertical(body, start, st)
	st.FallThrough = false
	return st
}

func (r Resolver) horizontal(body Body, box Box, st State) State {
	if st.Facing.X == 0 {
		return st
	}
	dir := cp.Vector{X: float64(st.Facing.X)}
	reach := box.Half.X + math.Abs(st.Velocity.X) + r.Margin

	hit, ok := horizontalFan(r.Caster, box, dir, reach, r.HorizontalRays)
	if !ok {
		return st
	}

	below, onSlope := r.speculateBelow(box.Translate(cp.Vector{X: st.Velocity.X}))

	switch hit.Surface {
	case SurfaceGround, SurfaceWall:
		body.Translate(dir.Mult(hit.Distance - box.Half.X - r.Margin))
		st.Velocity.X = 0
	case SurfaceSlope:
		if onSlope {
			body.Translate(dirDown.Mult(below.Distance - box.Half.Y - r.Margin))
		}
	case SurfaceOneWay:
		// never blocks sideways motion
	default:
	}
	return st
}

// speculateBelow probes straight down from a candidate box. The candidate
// is a value; the body is never moved to it.
func (r Resolver) speculateBelow(candidate Box) (Hit, bool) {
	reach := candidate.Half.Y + r.Margin
	return verticalFan(r.Caster, candidate, dirDown, reach, r.VerticalRays)
}

// vertical only counts a hit that clamps the body as support. A one-way
// platform being passed through, or a surface of unknown type, leaves the
// body ungrounded.
func (r Resolver) vertical(body Body, box Box, st State) State {
	descending := st.Descending()
	resolved := false

	if st.Facing.Y != 0 {
		dir := cp.Vector{Y: float64(st.Facing.Y)}
		reach := box.Half.Y + math.Abs(st.Velocity.Y) + r.Margin

		if hit, ok := verticalFan(r.Caster, box, dir, reach, r.VerticalRays); ok {
			switch hit.Surface {
			case SurfaceGround, SurfaceWall, SurfaceSlope:
				resolved = true
			case SurfaceOneWay:
				resolved = descending && hit.Distance > box.Half.Y && !st.FallThrough
			default:
			}
			if resolved {
				body.Translate(dir.Mult(hit.Distance - box.Half.Y - r.Margin))
				st.Velocity.Y = 0
			}
		}
	}

	st.Grounded = descending && resolved
	st.Falling = descending && !st.Grounded
	return st
}
