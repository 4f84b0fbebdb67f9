package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Snake in this terminal",
	Long: `Start playing the given variant, or pick one from a menu.

Controls:
  Arrows/WASD/hjkl  - Steer
  P/Space           - Pause
  R                 - Restart the run
  Ctrl+S            - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

The snake restarts by itself after a crash.

Examples:
  snake play
  snake play snake_fair
  snake play --seed 42 --fps 30
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	// Fail before entering the alternate screen
	if _, err := loadConfig(); err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	} else {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if result.Quit {
			return nil
		}
		gameID = result.GameID
		cfg.ScreenW, cfg.ScreenH = result.Config.ScreenW, result.Config.ScreenH
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	return tui.Run(game, cfg)
}
