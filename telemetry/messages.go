package telemetry

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/motion"
)

var ErrUnknownCommand = errors.New("telemetry: unknown command")

const (
	CommandIntent      = "intent"
	CommandJump        = "jump"
	CommandCutJump     = "cut_jump"
	CommandWallJump    = "wall_jump"
	CommandFallThrough = "fall_through"
	CommandGravity     = "gravity"
	CommandPause       = "pause"
	CommandResume      = "resume"
)

// Command is a client request against the controlled body.
type Command struct {
	Type string `json:"type"`
	// X and Y are the intent axes.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	// Factor divides the rising speed for cut_jump; zero means 2.
	Factor    float64 `json:"factor,omitempty"`
	Direction int     `json:"direction,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

type Contact struct {
	Surface  string  `json:"surface"`
	Distance float64 `json:"distance,omitempty"`
}

// Snapshot is the per-tick state sent to clients.
type Snapshot struct {
	Type     string             `json:"type"`
	Tick     uint64             `json:"tick"`
	X        float64            `json:"x"`
	Y        float64            `json:"y"`
	VX       float64            `json:"vx"`
	VY       float64            `json:"vy"`
	Grounded bool               `json:"grounded"`
	Falling  bool               `json:"falling"`
	Jumping  bool               `json:"jumping"`
	Paused   bool               `json:"paused"`
	Contacts map[string]Contact `json:"contacts"`
	Events   []string           `json:"events,omitempty"`
}

func SnapshotOf(c *motion.Controller, events []string) Snapshot {
	pos, vel, info := c.Position(), c.Velocity(), c.Contacts()
	contacts := make(map[string]Contact, 4)
	for _, side := range []motion.Side{motion.SideUp, motion.SideDown, motion.SideLeft, motion.SideRight} {
		hit := info.Get(side)
		if !hit.Found() {
			continue
		}
		contacts[side.String()] = Contact{Surface: hit.Surface.String(), Distance: hit.Distance}
	}
	return Snapshot{
		Type:     "snapshot",
		Tick:     c.Ticks(),
		X:        pos.X,
		Y:        pos.Y,
		VX:       vel.X,
		VY:       vel.Y,
		Grounded: c.Grounded(),
		Falling:  c.Falling(),
		Jumping:  c.Jumping(),
		Paused:   c.Paused(),
		Contacts: contacts,
		Events:   events,
	}
}

// Apply forwards cmd to the controller's command surface.
func Apply(cmd Command, c *motion.Controller) error {
	switch cmd.Type {
	case CommandIntent:
		c.SetIntent(cmd.X, cmd.Y)
	case CommandJump:
		c.Jump()
	case CommandCutJump:
		factor := cmd.Factor
		if factor == 0 {
			factor = 2
		}
		c.CutJump(factor)
	case CommandWallJump:
		c.WallJump(cmd.Direction)
	case CommandFallThrough:
		c.RequestFallThrough()
	case CommandGravity:
		c.SetGravityEnabled(cmd.Enabled == nil || *cmd.Enabled)
	case CommandPause:
		c.Pause()
	case CommandResume:
		c.Resume()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}
