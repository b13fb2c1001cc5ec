package physics

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
)

var errNoLevel = errors.New("physics: nil level")

// BuildLevel turns the physics layers of lvl into static surfaces and adds
// walls along the world bounds. It returns the number of surfaces added.
func BuildLevel(s *Space, lvl *levels.Level) (int, error) {
	if s == nil || lvl == nil {
		return 0, errNoLevel
	}
	before := len(s.surfaces)

	for _, layer := range lvl.PhysicsLayers() {
		if len(layer) != lvl.Width*lvl.Height {
			continue
		}
		processed := make([]bool, len(layer))
		for row := 0; row < lvl.Height; row++ {
			for col := 0; col < lvl.Width; col++ {
				idx := row*lvl.Width + col
				if processed[idx] {
					continue
				}
				tile := layer[idx]
				x0, y0 := lvl.ToWorld(col, row)
				size := float64(common.TileSize)

				switch tile {
				case levels.TileGround, levels.TileWall:
					// Greedily grow a rectangle of the same tile, width then
					// height, so runs become one box.
					w := 1
					for col+w < lvl.Width {
						i := row*lvl.Width + col + w
						if processed[i] || layer[i] != tile {
							break
						}
						w++
					}
					h := 1
				heightLoop:
					for row+h < lvl.Height {
						for c := col; c < col+w; c++ {
							i := (row+h)*lvl.Width + c
							if processed[i] || layer[i] != tile {
								break heightLoop
							}
						}
						h++
					}
					for rr := row; rr < row+h; rr++ {
						for cc := col; cc < col+w; cc++ {
							processed[rr*lvl.Width+cc] = true
						}
					}
					_, bottom := lvl.ToWorld(col, row+h-1)
					bb := cp.BB{L: x0, B: bottom, R: x0 + float64(w)*size, T: y0 + size}
					s.AddBox(bb, surfaceForTile(tile))

				case levels.TileSlopeRight:
					s.AddSlope(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x0 + size, Y: y0}, cp.Vector{X: x0 + size, Y: y0 + size})
					processed[idx] = true

				case levels.TileSlopeLeft:
					s.AddSlope(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x0 + size, Y: y0}, cp.Vector{X: x0, Y: y0 + size})
					processed[idx] = true

				case levels.TileOneWay:
					w := 1
					for col+w < lvl.Width && layer[row*lvl.Width+col+w] == levels.TileOneWay {
						processed[row*lvl.Width+col+w] = true
						w++
					}
					top := y0 + size
					s.AddSegment(cp.Vector{X: x0, Y: top}, cp.Vector{X: x0 + float64(w)*size, Y: top}, 0, motion.SurfaceOneWay)
					processed[idx] = true

				default:
					processed[idx] = true
				}
			}
		}
	}

	worldW, worldH := lvl.WorldSize()
	if worldW > 0 && worldH > 0 {
		const thickness = 1.0
		s.AddSegment(cp.Vector{X: 0, Y: 0}, cp.Vector{X: worldW, Y: 0}, thickness, motion.SurfaceGround)
		s.AddSegment(cp.Vector{X: 0, Y: worldH}, cp.Vector{X: worldW, Y: worldH}, thickness, motion.SurfaceGround)
		s.AddSegment(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: worldH}, thickness, motion.SurfaceWall)
		s.AddSegment(cp.Vector{X: worldW, Y: 0}, cp.Vector{X: worldW, Y: worldH}, thickness, motion.SurfaceWall)
	}

	return len(s.surfaces) - before, nil
}

func surfaceForTile(tile int) motion.SurfaceType {
	switch tile {
	case levels.TileGround:
		return motion.SurfaceGround
	case levels.TileWall:
		return motion.SurfaceWall
	case levels.TileSlopeRight, levels.TileSlopeLeft:
		return motion.SurfaceSlope
	case levels.TileOneWay:
		return motion.SurfaceOneWay
	default:
		return motion.SurfaceNone
	}
}
