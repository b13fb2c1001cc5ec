// Command platformer-tty runs the platformer in a terminal. It drives the
// same session and systems as the window host and draws with tcell.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/logger"
	"github.com/milk9111/platformer/sim"
	"go.uber.org/zap"
)

// tickInterval is one simulation step, common.FixedDelta as a duration.
const tickInterval = time.Second / 60

func main() {
	levelName := flag.String("level", sim.DefaultLevel, "level name in levels/ (basename, .json optional)")
	tuning := flag.String("tuning", "player.yaml", "player prefab in prefabs/ (.yaml or .toml)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFile := flag.String("log-file", "platformer-tty.log", "log file; the terminal itself is never logged to")
	telemetryAddr := flag.String("telemetry", "", "serve websocket telemetry on this address, e.g. :8089")
	watch := flag.Bool("watch", true, "reload prefabs and scripts when they change on disk")
	flag.Parse()

	if *logFile != "" {
		if err := logger.InitWithFileConfig(*logLevel, logger.DefaultFileConfig(*logFile), false); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	if err := run(sim.Config{
		Level:      *levelName,
		PlayerSpec: *tuning,
		Telemetry:  *telemetryAddr,
		Watch:      *watch,
		Log:        logger.Log,
	}); err != nil {
		logger.Error("platformer-tty stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg sim.Config) error {
	session, err := sim.New(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var keys keyState
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quit(ev) {
					return nil
				}
				handleKey(&keys, ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			*session.Input() = keys.next()
			session.Step()
			draw(screen, session, statusLine(session))
		}
	}
}

func quit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		ev.Key() == tcell.KeyRune && ev.Rune() == 'q'
}

func handleKey(keys *keyState, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		keys.press(actionLeft)
	case tcell.KeyRight:
		keys.press(actionRight)
	case tcell.KeyUp:
		keys.press(actionUp)
	case tcell.KeyDown:
		keys.press(actionDown)
	case tcell.KeyRune:
		if a, ok := actionForRune(ev.Rune()); ok {
			keys.press(a)
		}
	}
}

func statusLine(s *sim.Session) string {
	ctrl := s.Controller()
	if ctrl == nil {
		return " no player"
	}
	pos, vel := ctrl.Position(), ctrl.Velocity()
	flags := ""
	if ctrl.Grounded() {
		flags += " grounded"
	}
	if ctrl.Falling() {
		flags += " falling"
	}
	if ctrl.Jumping() {
		flags += " jumping"
	}
	if ctrl.Paused() {
		flags += " paused"
	}
	return fmt.Sprintf(" %s  pos %.0f,%.0f  vel %.2f,%.2f %s  [a/d move, space jump, s drop, z freeze, q quit]",
		s.Level.Name, pos.X, pos.Y, vel.X, vel.Y, flags)
}
