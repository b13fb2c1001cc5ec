package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sim"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// statusTicks is how long a status line stays on screen.
const statusTicks = 120

type Game struct {
	session *sim.Session
	ui      *ebitenui.UI
	log     *zap.Logger

	debug     bool
	menuOpen  bool
	clipboard bool

	status      string
	statusUntil int
	frames      int
}

func NewGame(session *sim.Session, debug bool, log *zap.Logger) *Game {
	g := &Game{session: session, debug: debug, log: log}
	g.ui = NewPauseUI(g)
	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable, tuning export disabled", zap.Error(err))
	} else {
		g.clipboard = true
	}
	return g
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		g.exportTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.menuOpen {
			g.resume()
		} else {
			g.openMenu()
		}
	}

	in := g.session.Input()
	if g.menuOpen {
		g.ui.Update()
		*in = component.Input{}
	} else {
		*in = pollInput()
	}
	g.session.Step()
	return nil
}

func (g *Game) openMenu() {
	if ctrl := g.session.Controller(); ctrl != nil {
		ctrl.Pause()
	}
	g.menuOpen = true
}

// resume closes the pause menu and lets the controller run again.
func (g *Game) resume() {
	if ctrl := g.session.Controller(); ctrl != nil {
		ctrl.Resume()
	}
	g.menuOpen = false
}

// exportTuning copies the player's active tuning to the clipboard as a yaml
// block that can be pasted into a prefab.
func (g *Game) exportTuning() {
	ctrl := g.session.Controller()
	if ctrl == nil {
		return
	}
	if !g.clipboard {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := prefabs.MarshalTuningYAML(ctrl.Tuning())
	if err != nil {
		g.log.Error("tuning export failed", zap.Error(err))
		g.setStatus("tuning export failed")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.log.Info("tuning copied to clipboard", zap.Int("bytes", len(data)))
	g.setStatus("tuning copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.frames + statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	view := newViewport(g.session.WorldSize())
	drawWorld(screen, g.session, view)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
	if g.status != "" && g.frames < g.statusUntil {
		ebitenutil.DebugPrintAt(screen, g.status, 8, common.BaseHeight-24)
	}
	if g.menuOpen {
		g.ui.Draw(screen)
	}
}

func (g *Game) debugText() string {
	ctrl := g.session.Controller()
	if ctrl == nil {
		return fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS())
	}
	st, pos, c := ctrl.State(), ctrl.Position(), ctrl.Contacts()
	return fmt.Sprintf(
		"FPS: %.2f  tick: %d\npos: %.2f, %.2f  vel: %.2f, %.2f\ngrounded: %t  falling: %t  jumping: %t  paused: %t\nup: %s  down: %s  left: %s  right: %s",
		ebiten.ActualFPS(), ctrl.Ticks(),
		pos.X, pos.Y, st.Velocity.X, st.Velocity.Y,
		st.Grounded, st.Falling, st.Jumping, st.Paused,
		c.Up.Surface, c.Down.Surface, c.Left.Surface, c.Right.Surface,
	)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
