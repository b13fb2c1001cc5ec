package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/sim"
	"golang.org/x/image/colornames"
)

var surfaceColors = map[motion.SurfaceType]color.Color{
	motion.SurfaceGround: colornames.Saddlebrown,
	motion.SurfaceWall:   colornames.Dimgray,
	motion.SurfaceSlope:  colornames.Peru,
	motion.SurfaceOneWay: colornames.Gold,
}

// viewport fits the world into the base resolution and flips y so world
// up is screen up.
type viewport struct {
	scale  float64
	offX   float64
	offY   float64
	worldH float64
}

func newViewport(worldW, worldH float64) viewport {
	if worldW <= 0 || worldH <= 0 {
		return viewport{scale: 1, worldH: worldH}
	}
	scale := math.Min(common.BaseWidth/worldW, common.BaseHeight/worldH)
	return viewport{
		scale:  scale,
		offX:   (common.BaseWidth - worldW*scale) / 2,
		offY:   (common.BaseHeight - worldH*scale) / 2,
		worldH: worldH,
	}
}

func (v viewport) point(p cp.Vector) (float32, float32) {
	return float32(v.offX + p.X*v.scale), float32(v.offY + (v.worldH-p.Y)*v.scale)
}

// rect converts a world box given by its bottom-left corner to a screen
// rectangle given by its top-left corner.
func (v viewport) rect(x, y, w, h float64) (float32, float32, float32, float32) {
	sx, sy := v.point(cp.Vector{X: x, Y: y + h})
	return sx, sy, float32(w * v.scale), float32(h * v.scale)
}

func drawWorld(screen *ebiten.Image, session *sim.Session, v viewport) {
	screen.Fill(colornames.Midnightblue)

	for _, surf := range session.Space.Surfaces() {
		if len(surf.Outline) == 0 {
			continue
		}
		drawSurface(screen, v, surf.Type, surf.Outline)
	}

	ecs.ForEach2(session.World, component.TransformComponent.Kind(), component.AppearanceComponent.Kind(),
		func(_ ecs.Entity, tr *component.Transform, look *component.Appearance) {
			x, y, w, h := v.rect(tr.X, tr.Y, tr.Width, tr.Height)
			vector.FillRect(screen, x, y, w, h, look.Color, false)
			vector.StrokeRect(screen, x, y, w, h, 1, colornames.Black, false)
		})
}

func drawSurface(screen *ebiten.Image, v viewport, kind motion.SurfaceType, outline []cp.Vector) {
	clr, ok := surfaceColors[kind]
	if !ok {
		return
	}

	switch {
	case len(outline) == 2:
		x0, y0 := v.point(outline[0])
		x1, y1 := v.point(outline[1])
		vector.StrokeLine(screen, x0, y0, x1, y1, 3, clr, true)
	case kind == motion.SurfaceSlope:
		for i := range outline {
			x0, y0 := v.point(outline[i])
			x1, y1 := v.point(outline[(i+1)%len(outline)])
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		}
	default:
		lo, hi := outline[0], outline[0]
		for _, p := range outline[1:] {
			lo = cp.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
			hi = cp.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
		}
		x, y, w, h := v.rect(lo.X, lo.Y, hi.X-lo.X, hi.Y-lo.Y)
		vector.FillRect(screen, x, y, w, h, clr, false)
	}
}
