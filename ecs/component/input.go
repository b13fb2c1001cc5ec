package component

// Input stores per-frame input state for an entity. The *Pressed and
// *Released fields are edges for this frame only.
type Input struct {
	MoveX        float64
	MoveY        float64
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	DownPressed  bool
	Pause        bool
}

var InputComponent = NewComponent[Input]()
