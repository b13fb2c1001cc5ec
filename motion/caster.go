package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// RayCaster answers single ray queries against the world's surfaces. It
// returns the nearest intersection within maxDist.
type RayCaster interface {
	Cast(origin, dir cp.Vector, maxDist float64) (Hit, bool)
}

// CasterFunc adapts a function to RayCaster.
type CasterFunc func(origin, dir cp.Vector, maxDist float64) (Hit, bool)

func (f CasterFunc) Cast(origin, dir cp.Vector, maxDist float64) (Hit, bool) {
	return f(origin, dir, maxDist)
}

const minRays = 2

var (
	dirUp    = cp.Vector{X: 0, Y: 1}
	dirDown  = cp.Vector{X: 0, Y: -1}
	dirLeft  = cp.Vector{X: -1, Y: 0}
	dirRight = cp.Vector{X: 1, Y: 0}
)

// castFan casts count parallel rays whose origins are spread evenly from
// `from` to `to` and returns the closest valid hit. Equal distances keep the
// earlier ray.
func castFan(caster RayCaster, from, to, dir cp.Vector, reach float64, count int) (Hit, bool) {
	if caster == nil || reach <= 0 || (dir.X == 0 && dir.Y == 0) {
		return Hit{}, false
	}
	if count < minRays {
		count = minRays
	}

	var closest Hit
	found := false
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		origin := cp.Vector{X: common.Lerp(from.X, to.X, t), Y: common.Lerp(from.Y, to.Y, t)}
		hit, ok := caster.Cast(origin, dir, reach)
		if !ok || !hit.Found() {
			continue
		}
		if !found || hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// horizontalFan spans the vertical centerline of box and casts sideways.
func horizontalFan(caster RayCaster, box Box, dir cp.Vector, reach float64, count int) (Hit, bool) {
	lo, hi := box.Min(), box.Max()
	from := cp.Vector{X: box.Center.X, Y: lo.Y}
	to := cp.Vector{X: box.Center.X, Y: hi.Y}
	return castFan(caster, from, to, dir, reach, count)
}

// verticalFan spans the horizontal centerline of box and casts up or down.
func verticalFan(caster RayCaster, box Box, dir cp.Vector, reach float64, count int) (Hit, bool) {
	lo, hi := box.Min(), box.Max()
	from := cp.Vector{X: lo.X, Y: box.Center.Y}
	to := cp.Vector{X: hi.X, Y: box.Center.Y}
	return castFan(caster, from, to, dir, reach, count)
}
