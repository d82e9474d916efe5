package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// configurable is implemented by games that accept an engine configuration.
type configurable interface {
	Configure(cfg t2048.Config) error
}

// CreateGame creates a registered variant and applies the engine configuration.
func CreateGame(id string, engine t2048.Config) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(configurable); ok {
		if err := c.Configure(engine); err != nil {
			return nil, fmt.Errorf("create %s: %w", id, err)
		}
	}
	return game, nil
}
