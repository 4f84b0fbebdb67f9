// snake is the classic snake game for the terminal, SSH and WebSocket clients.
//
// Usage:
//
//	snake list              - List available variants
//	snake play [variant]    - Play locally (menu when no variant is given)
//	snake serve             - Start SSH server for remote play
//	snake web               - Start WebSocket server for browser/bot clients
//	snake config            - Check or print the game configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom snake.yaml
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake moves one cell at a time on a 10x10 arena, grows when it eats
and starts over when it hits a wall or itself.

Available commands:
  list     - Show all variants
  play     - Play locally
  serve    - Start SSH server for remote play
  web      - Start WebSocket server
  config   - Check or print the configuration

Examples:
  snake play
  snake play snake_fair --seed 42
  snake serve --ssh :2222
  snake web --addr :8080
  snake config --defaults > configs/snake.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the stderr logger used by the servers.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads and validates the game configuration named by --config
// and hands it to the games created afterwards.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	if _, err := snake.RulesFromConfig(cfg); err != nil {
		return config.SnakeConfig{}, fmt.Errorf("config: %w", err)
	}
	snake.SetConfig(cfg)
	return cfg, nil
}
