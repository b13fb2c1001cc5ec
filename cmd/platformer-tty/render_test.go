package main

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeDemo(t *testing.T) {
	s, err := sim.New(sim.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	w, h := s.WorldSize()
	// One cell per tile.
	cells := rasterize(s, grid{cols: 40, rows: 15, worldW: w, worldH: h})
	require.Len(t, cells, 15)
	require.Len(t, cells[0], 40)

	assert.Equal(t, '#', cells[14][5].r)
	assert.Equal(t, '#', cells[13][20].r)
	assert.Equal(t, '|', cells[6][0].r)
	assert.Equal(t, '|', cells[9][24].r)
	assert.Equal(t, '=', cells[4][16].r)
	assert.Equal(t, '=', cells[4][20].r)
	assert.Equal(t, ' ', cells[4][21].r)
	assert.Equal(t, '/', cells[12][18].r)
	assert.Equal(t, '@', cells[12][3].r)
	assert.Equal(t, '-', cells[6][12].r)
	assert.Equal(t, ' ', cells[10][10].r)
}

func TestRasterizeEmptyGrid(t *testing.T) {
	s, err := sim.New(sim.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Empty(t, rasterize(s, grid{}))
	cells := rasterize(s, grid{cols: 3, rows: 2})
	assert.Equal(t, ' ', cells[1][2].r)
}

func TestGridClamps(t *testing.T) {
	g := grid{cols: 10, rows: 5, worldW: 100, worldH: 50}
	assert.Equal(t, 0, g.col(-5))
	assert.Equal(t, 9, g.col(500))
	assert.Equal(t, 4, g.row(0))
	assert.Equal(t, 0, g.row(50))
	assert.Equal(t, 2, g.row(25))
}

func TestTcellColor(t *testing.T) {
	assert.Equal(t, tcell.ColorWhite, tcellColor(nil))
	assert.Equal(t, tcell.NewRGBColor(0x4f, 0xc3, 0xf7), tcellColor(color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}))
}
