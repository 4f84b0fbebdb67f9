package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Arena: ArenaConfig{
			Width:  10,
			Height: 10,
		},
		Start: StartConfig{
			Heading: "up",
			Segments: []Cell{
				{X: 3, Y: 3},
				{X: 3, Y: 2},
			},
		},
		Timing: TimingConfig{
			MoveInterval: 500 * time.Millisecond,
			FoodInterval: time.Second,
		},
		Food: FoodConfig{
			MaxItems:   1,
			AvoidSnake: false,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
