package component

// Transform is the last known placement of an entity's box, bottom-left
// corner in world units with y up. Renderers read it; the movement system
// writes it.
type Transform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

var TransformComponent = NewComponent[Transform]()
