package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/transport/ws"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the Snake WebSocket server",
	Long: `Start a WebSocket server on /ws. Each connection plays its own game.

Protocol (JSON text frames, protocol_version "1"):
  client: {"type":"HELLO","protocol_version":"1","variant":"snake"}
  client: {"type":"INPUT","dir":"left"}
  server: WELCOME, then a FRAME after every movement or food tick
  server: ERROR {code, message} for rejected messages

Examples:
  snake web
  snake web --addr :9000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger("snake-ws")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ws.NewServer(cfg, logger, flagSeed).ListenAndServe(ctx, flagWebAddr)
}
