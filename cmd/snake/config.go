package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagPrintDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Check the game configuration",
	Long: `Loads the configuration the other commands would use and reports it.

Search order:
  --config path, ~/.snake/configs/snake.yaml, ./configs/snake.yaml,
  then the built-in defaults.

Examples:
  snake config
  snake config --config ./my-snake.yaml
  snake config --defaults > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagPrintDefaults, "defaults", false, "Print the built-in default YAML")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagPrintDefaults {
		_, err := out.Write(config.GetDefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Configuration OK")
	fmt.Fprintf(out, "  arena:         %dx%d\n", cfg.Arena.Width, cfg.Arena.Height)
	fmt.Fprintf(out, "  start:         %s, %v\n", cfg.Start.Heading, cfg.Start.Segments)
	fmt.Fprintf(out, "  move interval: %s\n", cfg.Timing.MoveInterval)
	fmt.Fprintf(out, "  food interval: %s\n", cfg.Timing.FoodInterval)
	fmt.Fprintf(out, "  food cap:      %d (avoid snake: %t)\n", cfg.Food.MaxItems, cfg.Food.AvoidSnake)
	return nil
}
