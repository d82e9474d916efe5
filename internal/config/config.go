// Package config provides YAML-based configuration loading for the 2048
// engine and its front-ends.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// T2048Config contains all configuration for the 2048 engine.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	Spawn     SpawnConfig     `yaml:"spawn"`
}

// BoardConfig defines the grid geometry.
type BoardConfig struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	CellSize int `yaml:"cell_size"` // Board units per cell side
}

// AnimationConfig defines how fast tiles slide.
type AnimationConfig struct {
	Velocity  int `yaml:"velocity"`   // Board units per frame
	FrameRate int `yaml:"frame_rate"` // Frames per second
}

// SpawnConfig defines tile creation.
type SpawnConfig struct {
	Values       []int `yaml:"values"`
	InitialTiles int   `yaml:"initial_tiles"`
	InitialValue int   `yaml:"initial_value"`
	OnNoop       bool  `yaml:"on_noop"` // Spawn after a move that changed nothing
}

// Engine converts the YAML layout into the engine configuration.
func (c T2048Config) Engine() t2048.Config {
	values := make([]int, len(c.Spawn.Values))
	copy(values, c.Spawn.Values)
	return t2048.Config{
		Rows:         c.Board.Rows,
		Cols:         c.Board.Cols,
		CellSize:     c.Board.CellSize,
		Velocity:     c.Animation.Velocity,
		FrameRate:    c.Animation.FrameRate,
		SpawnValues:  values,
		InitialTiles: c.Spawn.InitialTiles,
		InitialValue: c.Spawn.InitialValue,
		SpawnOnNoop:  c.Spawn.OnNoop,
	}
}

// Validate checks the configuration against the engine's rules.
func (c T2048Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("t2048 config: %w", err)
	}
	return nil
}
