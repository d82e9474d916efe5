package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Rows:     4,
			Cols:     4,
			CellSize: 200,
		},
		Animation: AnimationConfig{
			Velocity:  20,
			FrameRate: 60,
		},
		Spawn: SpawnConfig{
			Values:       []int{2, 4},
			InitialTiles: 2,
			InitialValue: 2,
			OnNoop:       true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
