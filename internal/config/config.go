// Package config provides YAML-based configuration loading for Snake.
package config

import (
	"fmt"
	"time"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Arena  ArenaConfig  `yaml:"arena"`
	Start  StartConfig  `yaml:"start"`
	Timing TimingConfig `yaml:"timing"`
	Food   FoodConfig   `yaml:"food"`
}

// ArenaConfig defines the playing field size in cells.
type ArenaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StartConfig defines the snake placed at the start of every game.
type StartConfig struct {
	Heading  string `yaml:"heading"` // "left", "up", "right" or "down"
	Segments []Cell `yaml:"segments"`
}

// Cell is an arena coordinate. Y grows upwards.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// TimingConfig defines the two independent game cadences.
type TimingConfig struct {
	MoveInterval time.Duration `yaml:"move_interval"` // Time between snake steps
	FoodInterval time.Duration `yaml:"food_interval"` // Time between food spawns
}

// FoodConfig defines food spawning behaviour.
type FoodConfig struct {
	MaxItems   int  `yaml:"max_items"`   // 0 = no cap
	AvoidSnake bool `yaml:"avoid_snake"` // Never spawn food under the body
}

// Validate checks the values that do not need game rules to interpret.
// Body adjacency and bounds are checked when the game builds its rules.
func (c SnakeConfig) Validate() error {
	if c.Arena.Width < 1 || c.Arena.Height < 1 {
		return fmt.Errorf("config: arena must be at least 1x1, got %dx%d", c.Arena.Width, c.Arena.Height)
	}
	if len(c.Start.Segments) == 0 {
		return fmt.Errorf("config: start.segments is empty")
	}
	switch c.Start.Heading {
	case "left", "up", "right", "down":
	default:
		return fmt.Errorf("config: unknown start.heading %q", c.Start.Heading)
	}
	if c.Timing.MoveInterval <= 0 {
		return fmt.Errorf("config: timing.move_interval must be positive, got %s", c.Timing.MoveInterval)
	}
	if c.Timing.FoodInterval <= 0 {
		return fmt.Errorf("config: timing.food_interval must be positive, got %s", c.Timing.FoodInterval)
	}
	if c.Food.MaxItems < 0 {
		return fmt.Errorf("config: food.max_items must not be negative, got %d", c.Food.MaxItems)
	}
	return nil
}
