package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/logger"
	"github.com/milk9111/platformer/sim"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "show controller state on screen")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", sim.DefaultLevel, "level name in levels/ (basename, .json optional)")
	tuning := flag.String("tuning", "player.yaml", "player prefab in prefabs/ (.yaml or .toml)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFile := flag.String("log-file", "", "also write logs to this file, rotated")
	telemetryAddr := flag.String("telemetry", "", "serve websocket telemetry on this address, e.g. :8089")
	watch := flag.Bool("watch", true, "reload prefabs and scripts when they change on disk")
	flag.Parse()

	if err := logger.Init(*logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	session, err := sim.New(sim.Config{
		Level:      *levelName,
		PlayerSpec: *tuning,
		Telemetry:  *telemetryAddr,
		Watch:      *watch,
		Log:        logger.Log,
	})
	if err != nil {
		logger.Fatal("failed to start session", zap.String("level", *levelName), zap.Error(err))
	}
	defer session.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("platformer: " + session.Level.Name)

	game := NewGame(session, *debug, logger.Named("game"))
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game stopped", zap.Error(err))
	}
}
