package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestModel(t *testing.T, id string, engine t2048.Config, store *storage.Store) Model {
	t.Helper()
	game, err := CreateGame(id, engine)
	if err != nil {
		t.Fatalf("CreateGame(%q) error = %v", id, err)
	}
	m := NewModel(game, store, testRuntime())
	m.Init()
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return model, cmd
}

// settle ticks until the move in flight has finished.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, TickMsg(time.Now()))
	for i := 0; m.State().Busy; i++ {
		if i > 1000 {
			t.Fatal("move did not settle")
		}
		m, _ = send(t, m, TickMsg(time.Now()))
	}
	return m
}

func TestCreateGame(t *testing.T) {
	engine := t2048.DefaultConfig()
	engine.Rows = 5

	game, err := CreateGame(t2048.VariantStrict, engine)
	if err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}
	g, ok := game.(*t2048.Game)
	if !ok {
		t.Fatalf("CreateGame() returned %T", game)
	}
	if g.Config().Rows != 5 {
		t.Errorf("Rows = %d, want 5", g.Config().Rows)
	}
	if g.Config().SpawnOnNoop {
		t.Error("strict variant must not spawn on no-op moves")
	}

	if _, err := CreateGame("tetris", engine); err == nil {
		t.Error("expected error for unknown variant")
	}

	engine.Velocity = 0
	if _, err := CreateGame(t2048.VariantClassic, engine); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestModelMoveAndQuit(t *testing.T) {
	store := testStore(t)
	m := newTestModel(t, t2048.VariantClassic, t2048.DefaultConfig(), store)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = settle(t, m)

	if m.State().Moves != 1 {
		t.Fatalf("Moves = %d, want 1", m.State().Moves)
	}

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("model should be quitting")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if m.View() != "" {
		t.Error("View() should be empty once quitting")
	}

	results, err := store.TopResults(t2048.VariantClassic, 10)
	if err != nil {
		t.Fatalf("TopResults() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Outcome != storage.OutcomeQuit || results[0].Moves != 1 {
		t.Errorf("result = %+v, want one quit after 1 move", results[0])
	}
	if results[0].Seed != 7 {
		t.Errorf("Seed = %d, want 7", results[0].Seed)
	}
}

func TestModelSkipsEmptyGames(t *testing.T) {
	store := testStore(t)
	m := newTestModel(t, t2048.VariantClassic, t2048.DefaultConfig(), store)

	send(t, m, runeKey('q'))

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want none for a game without moves", len(results))
	}
}

func TestModelRecordsLoss(t *testing.T) {
	store := testStore(t)
	engine := t2048.DefaultConfig()
	engine.Rows, engine.Cols = 1, 1
	engine.InitialTiles = 1
	m := newTestModel(t, t2048.VariantClassic, engine, store)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = settle(t, m)

	if !m.State().GameOver {
		t.Fatal("expected game over on a full 1x1 board")
	}

	// Leaving the finished game must not record it twice.
	m, _ = send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b after game over should go back to the menu")
	}

	results, err := store.TopResults(t2048.VariantClassic, 10)
	if err != nil {
		t.Fatalf("TopResults() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Outcome != storage.OutcomeLost {
		t.Errorf("Outcome = %q, want %q", results[0].Outcome, storage.OutcomeLost)
	}
	if results[0].MaxTile != 2 {
		t.Errorf("MaxTile = %d, want 2", results[0].MaxTile)
	}
}

func TestModelBackRequiresPause(t *testing.T) {
	m := newTestModel(t, t2048.VariantClassic, t2048.DefaultConfig(), nil)

	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("b during play should be ignored")
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg(time.Now()))
	if !m.State().Paused {
		t.Fatal("game should be paused")
	}

	m, _ = send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b while paused should go back to the menu")
	}
}

func TestModelRestart(t *testing.T) {
	store := testStore(t)
	m := newTestModel(t, t2048.VariantClassic, t2048.DefaultConfig(), store)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = settle(t, m)

	m, _ = send(t, m, runeKey('r'))
	m, _ = send(t, m, TickMsg(time.Now()))

	if m.State().Moves != 0 {
		t.Errorf("Moves after restart = %d, want 0", m.State().Moves)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() error = %v", err)
	}
	if len(results) != 1 || results[0].Outcome != storage.OutcomeQuit {
		t.Errorf("restart should record the abandoned game once, got %+v", results)
	}
}

func TestModelRestartWaitsForMove(t *testing.T) {
	store := testStore(t)
	engine := t2048.DefaultConfig()
	engine.Rows, engine.Cols = 1, 4
	engine.InitialTiles = 1
	m := newTestModel(t, t2048.VariantStrict, engine, store)

	// A lone tile on a strict 1x4 board slides at least one way.
	for _, key := range []tea.KeyType{tea.KeyLeft, tea.KeyRight} {
		m, _ = send(t, m, tea.KeyMsg{Type: key})
		m, _ = send(t, m, TickMsg(time.Now()))
		if m.State().Busy {
			break
		}
	}
	if !m.State().Busy {
		t.Fatal("expected a move in flight")
	}

	moves := m.State().Moves + 1

	m, _ = send(t, m, runeKey('r'))
	m = settle(t, m)
	if m.State().Moves != moves {
		t.Fatalf("Moves = %d, want %d: the sliding move finishes first", m.State().Moves, moves)
	}

	m, _ = send(t, m, TickMsg(time.Now()))
	if m.State().Moves != 0 {
		t.Errorf("Moves after restart = %d, want 0", m.State().Moves)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() error = %v", err)
	}
	if len(results) != 1 || results[0].Moves != moves {
		t.Errorf("restart should record the finished move, got %+v", results)
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	m := newTestModel(t, t2048.VariantClassic, t2048.DefaultConfig(), nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = settle(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = send(t, m, TickMsg(time.Now()))
	if m.State().Moves != 1 {
		t.Errorf("Moves after resize = %d, want 1", m.State().Moves)
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	m, _ = send(t, m, TickMsg(time.Now()))
	if !m.State().Paused {
		t.Error("a screen too small for the board should pause the game")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, t2048.VariantClassic, t2048.DefaultConfig(), nil)

	view := m.View()
	if !strings.Contains(view, "Moves: 0") {
		t.Errorf("View() should show the move counter, got:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("View() has %d lines, want 24", lines)
	}
}
