package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Variant string
	Moves   int
	Board   [][]int
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
// Board is only consistent between moves; mid-move it may show merged values
// at their pre-move cells.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.move != nil:
		state = StateAnimating
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:    g.tick,
		Variant: g.id,
		Moves:   g.moves,
		Board:   g.grid.Values(),
		MaxTile: g.grid.MaxTile(),
		State:   state,
	}
}
