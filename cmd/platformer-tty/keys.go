package main

import "github.com/milk9111/platformer/ecs/component"

// holdTicks is how long a key press counts as held. Terminals only report
// presses and auto-repeat, so a key stays down until the repeats stop.
const holdTicks = 10

type action int

const (
	actionLeft action = iota
	actionRight
	actionUp
	actionDown
	actionJump
	actionPause
	actionCount
)

// keyState turns press events into the held, pressed and released edges
// the player controller expects.
type keyState struct {
	held    [actionCount]int
	pressed [actionCount]bool
	wasDown [actionCount]bool
}

func (k *keyState) press(a action) {
	if a < 0 || a >= actionCount {
		return
	}
	k.held[a] = holdTicks
	k.pressed[a] = true
}

func (k *keyState) down(a action) bool {
	return k.held[a] > 0
}

// next builds this tick's input and ages the held keys.
func (k *keyState) next() component.Input {
	var in component.Input
	if k.down(actionLeft) {
		in.MoveX--
	}
	if k.down(actionRight) {
		in.MoveX++
	}
	if k.down(actionUp) {
		in.MoveY++
	}
	if k.down(actionDown) {
		in.MoveY--
	}
	in.Jump = k.down(actionJump)
	in.JumpPressed = k.down(actionJump) && !k.wasDown[actionJump]
	in.JumpReleased = !k.down(actionJump) && k.wasDown[actionJump]
	in.DownPressed = k.down(actionDown) && !k.wasDown[actionDown]
	in.Pause = k.down(actionPause)

	for a := range k.held {
		k.wasDown[a] = k.held[a] > 0
		if k.held[a] > 0 && !k.pressed[a] {
			k.held[a]--
		}
		k.pressed[a] = false
	}
	return in
}

func actionForRune(r rune) (action, bool) {
	switch r {
	case 'a', 'A', 'h':
		return actionLeft, true
	case 'd', 'D', 'l':
		return actionRight, true
	case 'w', 'W', 'k':
		return actionUp, true
	case 's', 'S', 'j':
		return actionDown, true
	case ' ':
		return actionJump, true
	case 'z', 'Z':
		return actionPause, true
	default:
		return 0, false
	}
}
