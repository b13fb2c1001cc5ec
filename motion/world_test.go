package motion

import (
	"math"

	"github.com/jakecoffman/cp"
)

// testSurface is either an axis-aligned box or a line segment.
type testSurface struct {
	name    string
	kind    SurfaceType
	segment bool
	lo, hi  cp.Vector
}

// testWorld is an in-memory RayCaster over boxes and segments.
type testWorld struct {
	surfaces []*testSurface
	casts    int
}

func (w *testWorld) addBox(name string, kind SurfaceType, minX, minY, maxX, maxY float64) *testSurface {
	s := &testSurface{name: name, kind: kind, lo: cp.Vector{X: minX, Y: minY}, hi: cp.Vector{X: maxX, Y: maxY}}
	w.surfaces = append(w.surfaces, s)
	return s
}

func (w *testWorld) addSegment(name string, kind SurfaceType, a, b cp.Vector) *testSurface {
	s := &testSurface{name: name, kind: kind, segment: true, lo: a, hi: b}
	w.surfaces = append(w.surfaces, s)
	return s
}

func (w *testWorld) Cast(origin, dir cp.Vector, maxDist float64) (Hit, bool) {
	w.casts++
	end := origin.Add(dir.Mult(maxDist))

	bestT := math.Inf(1)
	var best *testSurface
	for _, s := range w.surfaces {
		var t float64
		var ok bool
		if s.segment {
			t, ok = raySegment(origin, end, s.lo, s.hi)
		} else {
			t, ok = rayBox(origin, end, s.lo, s.hi)
		}
		if ok && t < bestT {
			bestT = t
			best = s
		}
	}
	if best == nil {
		return Hit{}, false
	}
	dist := bestT * maxDist
	return Hit{
		Surface:  best.kind,
		Distance: dist,
		Point:    origin.Add(dir.Mult(dist)),
		Handle:   best,
	}, true
}

// rayBox is a slab test; rays starting inside the box report nothing.
func rayBox(p0, p1, lo, hi cp.Vector) (float64, bool) {
	if p0.X > lo.X && p0.X < hi.X && p0.Y > lo.Y && p0.Y < hi.Y {
		return 0, false
	}
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	tmin, tmax := 0.0, 1.0

	if dx != 0 {
		t1, t2 := (lo.X-p0.X)/dx, (hi.X-p0.X)/dx
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin, tmax = math.Max(tmin, t1), math.Min(tmax, t2)
	} else if p0.X < lo.X || p0.X > hi.X {
		return 0, false
	}

	if dy != 0 {
		t1, t2 := (lo.Y-p0.Y)/dy, (hi.Y-p0.Y)/dy
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin, tmax = math.Max(tmin, t1), math.Min(tmax, t2)
	} else if p0.Y < lo.Y || p0.Y > hi.Y {
		return 0, false
	}

	return tmin, tmax >= tmin
}

func raySegment(p0, p1, a, b cp.Vector) (float64, bool) {
	r := p1.Sub(p0)
	s := b.Sub(a)
	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qp := a.Sub(p0)
	t := (qp.X*s.Y - qp.Y*s.X) / denom
	u := (qp.X*r.Y - qp.Y*r.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// testTuning yields gravity 0.5 and jump speed 1 with a one-second tick.
func testTuning() Tuning {
	return Tuning{
		MaxSpeed:           4,
		GroundAcceleration: 0.5,
		AirAcceleration:    0.25,
		GroundFriction:     0.5,
		AirFriction:        0.1,
		WallFriction:       0.2,
		WallAirFriction:    0.05,
		WallJumpVelocity:   3,
		JumpHeight:         1,
		JumpTime:           2,
		TerminalVelocity:   10,
		VerticalRays:       4,
		HorizontalRays:     4,
		Margin:             0.01,
		ProbeReach:         0.01,
		TickDuration:       1,
	}
}

// restingBox is a unit box standing on y=0 with the margin gap.
func restingBox(x float64) Box {
	return Box{Center: cp.Vector{X: x, Y: 0.51}, Half: cp.Vector{X: 0.5, Y: 0.5}}
}
