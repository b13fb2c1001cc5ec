package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs/component"
)

const stickDeadzone = 0.2

// pollInput reads the keyboard and the first gamepad. Z is held to freeze
// the player.
func pollInput() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	in := component.Input{
		Jump:         ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace),
		DownPressed:  inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown),
		Pause:        ebiten.IsKeyPressed(ebiten.KeyZ),
	}
	if left {
		in.MoveX--
	}
	if right {
		in.MoveX++
	}
	if up {
		in.MoveY++
	}
	if down {
		in.MoveY--
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			return in
		}
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			in.MoveX = leftX
		}
		// Stick up is negative on standard layouts.
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(leftY) > stickDeadzone {
			in.MoveY = -leftY
		}

		jump := ebiten.StandardGamepadButtonRightBottom
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, jump)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, jump)
		in.JumpReleased = in.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, jump)
		in.DownPressed = in.DownPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		in.Pause = in.Pause || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	}
	return in
}
