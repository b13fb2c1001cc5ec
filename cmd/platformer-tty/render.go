package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/sim"
)

var surfaceGlyphs = map[motion.SurfaceType]rune{
	motion.SurfaceGround: '#',
	motion.SurfaceWall:   '|',
	motion.SurfaceSlope:  '/',
	motion.SurfaceOneWay: '=',
}

type cell struct {
	r     rune
	style tcell.Style
}

// grid maps world units (y up) onto terminal cells (row 0 at the top).
type grid struct {
	cols, rows     int
	worldW, worldH float64
}

func (g grid) col(x float64) int {
	return clampInt(int(math.Floor(x/g.worldW*float64(g.cols))), 0, g.cols-1)
}

func (g grid) row(y float64) int {
	return clampInt(int(math.Floor((g.worldH-y)/g.worldH*float64(g.rows))), 0, g.rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rasterize draws the session into a rows x cols buffer.
func rasterize(s *sim.Session, g grid) [][]cell {
	out := make([][]cell, g.rows)
	for i := range out {
		out[i] = make([]cell, g.cols)
		for j := range out[i] {
			out[i][j] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
	if g.cols <= 0 || g.rows <= 0 || g.worldW <= 0 || g.worldH <= 0 {
		return out
	}

	fill := func(lo, hi cp.Vector, c cell) {
		// Shrink by a hair so a box ending on a cell edge stays out of it.
		const eps = 1e-6
		for row := g.row(hi.Y - eps); row <= g.row(lo.Y+eps); row++ {
			for col := g.col(lo.X + eps); col <= g.col(hi.X-eps); col++ {
				out[row][col] = c
			}
		}
	}

	for _, surf := range s.Space.Surfaces() {
		glyph, ok := surfaceGlyphs[surf.Type]
		if !ok || len(surf.Outline) == 0 {
			continue
		}
		lo, hi := bounds(surf.Outline)
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		if surf.Type == motion.SurfaceOneWay {
			style = style.Foreground(tcell.ColorYellow)
			// Segments have no height; draw them in the row just below.
			lo.Y, hi.Y = lo.Y-1e-3, lo.Y
		}
		fill(lo, hi, cell{r: glyph, style: style})
	}

	ecs.ForEach2(s.World, component.TransformComponent.Kind(), component.AppearanceComponent.Kind(),
		func(e ecs.Entity, tr *component.Transform, look *component.Appearance) {
			glyph := '-'
			if ecs.Has(s.World, e, component.PlayerTagComponent.Kind()) {
				glyph = '@'
			}
			style := tcell.StyleDefault.Foreground(tcellColor(look.Color)).Bold(true)
			fill(cp.Vector{X: tr.X, Y: tr.Y}, cp.Vector{X: tr.X + tr.Width, Y: tr.Y + tr.Height}, cell{r: glyph, style: style})
		})
	return out
}

func bounds(points []cp.Vector) (lo, hi cp.Vector) {
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = cp.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = cp.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	return lo, hi
}

func tcellColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorWhite
	}
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func draw(screen tcell.Screen, s *sim.Session, status string) {
	w, h := screen.Size()
	worldW, worldH := s.WorldSize()
	g := grid{cols: w, rows: h - 1, worldW: worldW, worldH: worldH}

	screen.Clear()
	for row, line := range rasterize(s, g) {
		for col, c := range line {
			screen.SetContent(col, row, c.r, nil, c.style)
		}
	}
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}
