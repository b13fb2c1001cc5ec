package motion

// Prober classifies the surfaces touching each side of a box.
type Prober struct {
	Caster         RayCaster
	VerticalRays   int
	HorizontalRays int
	Margin         float64
	Reach          float64
}

func newProber(caster RayCaster, t Tuning) Prober {
	return Prober{
		Caster:         caster,
		VerticalRays:   t.VerticalRays,
		HorizontalRays: t.HorizontalRays,
		Margin:         t.Margin,
		Reach:          t.ProbeReach,
	}
}

// Probe casts a fan of rays out of every side of box and keeps the closest
// hit per side.
func (p Prober) Probe(box Box) ContactInfo {
	var info ContactInfo

	vReach := box.Half.Y + p.Margin + p.Reach
	info.Down, _ = verticalFan(p.Caster, box, dirDown, vReach, p.VerticalRays)
	info.Up, _ = verticalFan(p.Caster, box, dirUp, vReach, p.VerticalRays)

	hReach := box.Half.X + p.Margin + p.Reach
	info.Left, _ = horizontalFan(p.Caster, box, dirLeft, hReach, p.HorizontalRays)
	info.Right, _ = horizontalFan(p.Caster, box, dirRight, hReach, p.HorizontalRays)

	return info
}
