package component

// Player holds the state the input adapter keeps on top of the controller:
// the jump budget, the pause hold and the last intent it applied.
type Player struct {
	// MaxJumps counts the ground jump, so 2 allows one extra jump in the air.
	MaxJumps int
	AirJumps int

	HoldingPause bool

	// IntentX and IntentY are only pushed to the controller when they
	// change, which leaves remote intents alone while the keys are idle.
	IntentX float64
	IntentY float64
}

var PlayerComponent = NewComponent[Player]()
