package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
)

// KinematicBody is a motion.Body backed by a cp kinematic body. Moving it
// re-adds its shape to the space, which recaches the shape's bounding box
// and its spatial index entry, so later queries see the new position.
type KinematicBody struct {
	space   *Space
	body    *cp.Body
	shape   *cp.Shape
	half    cp.Vector
	surface *Surface
	filter  cp.ShapeFilter
}

func (k *KinematicBody) Bounds() motion.Box {
	return motion.Box{Center: k.body.Position(), Half: k.half}
}

func (k *KinematicBody) Translate(delta cp.Vector) {
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	k.body.SetPosition(k.body.Position().Add(delta))
	k.space.space.RemoveShape(k.shape)
	k.space.space.AddShape(k.shape)
}

func (k *KinematicBody) Surface() *Surface { return k.surface }
func (k *KinematicBody) Shape() *cp.Shape  { return k.shape }
