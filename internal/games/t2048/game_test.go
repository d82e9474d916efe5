package t2048

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps the game with empty input until the move in flight finishes.
func settle(t *testing.T, g *Game) int {
	t.Helper()
	ticks := 0
	for g.State().Busy {
		g.Step(input())
		ticks++
		if ticks > 10000 {
			t.Fatal("move never settled")
		}
	}
	return ticks
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{VariantClassic, VariantStrict} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}

	classic, _ := registry.Info(VariantClassic)
	strict, _ := registry.Info(VariantStrict)
	if classic.Rules == "" || classic.Rules == strict.Rules {
		t.Errorf("variants should describe different spawn rules: %q / %q", classic.Rules, strict.Rules)
	}
}

func TestResetSpawnsInitialTiles(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig())

	snap := g.Snapshot()
	count := 0
	for _, row := range snap.Board {
		for _, v := range row {
			if v != 0 {
				count++
				if v != 2 {
					t.Errorf("initial tile value = %d, want 2", v)
				}
			}
		}
	}
	if count != 2 {
		t.Errorf("initial tiles = %d, want 2", count)
	}
	if snap.State != StatePlaying || snap.Moves != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestMoveAnimatesAcrossTicks(t *testing.T) {
	g := New()
	if err := g.Configure(func() Config {
		cfg := DefaultConfig()
		cfg.InitialTiles = 1
		return cfg
	}()); err != nil {
		t.Fatal(err)
	}
	g.Reset(runtimeConfig())

	// Pick a direction that moves the single tile.
	values := g.grid.Values()
	var dir core.Action
	for _, d := range []struct {
		action core.Action
		dir    Direction
	}{
		{core.ActionLeft, DirLeft},
		{core.ActionRight, DirRight},
		{core.ActionUp, DirUp},
		{core.ActionDown, DirDown},
	} {
		if _, _, changed := Compact(values, d.dir); changed {
			dir = d.action
			break
		}
	}
	if dir == core.ActionNone {
		t.Fatal("no direction moves the initial tile")
	}

	var frames int
	g.SetObserver(func(Frame) { frames++ })

	res := g.Step(input(dir))
	if !res.State.Busy {
		t.Fatal("expected the move to be in flight after one tick")
	}
	if g.Snapshot().State != StateAnimating {
		t.Errorf("State = %s, want animating", g.Snapshot().State)
	}

	// Input during the animation is ignored.
	g.Step(input(core.ActionUp, core.ActionLeft))
	settle(t, g)

	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.State().Moves)
	}
	if got := g.grid.Len(); got != 2 {
		t.Errorf("tiles after move = %d, want 2", got)
	}
	if frames < 2 {
		t.Errorf("observer saw %d frames", frames)
	}
	if !g.LastResult().Changed {
		t.Error("LastResult().Changed = false")
	}
}

func TestGameOverOnFullBoard(t *testing.T) {
	g := New()
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 1
	cfg.InitialTiles = 1
	if err := g.Configure(cfg); err != nil {
		t.Fatal(err)
	}
	g.Reset(runtimeConfig())

	res := g.Step(input(core.ActionLeft))
	if !res.State.GameOver {
		t.Fatal("expected game over on a full 1x1 board")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("State = %s, want game_over", g.Snapshot().State)
	}
	if g.LastResult().Outcome != OutcomeLost {
		t.Errorf("Outcome = %v, want lost", g.LastResult().Outcome)
	}

	// Directions are ignored once the game is over.
	g.Step(input(core.ActionRight))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.State().Moves)
	}
}

func TestStrictVariantIgnoresBlockedMoves(t *testing.T) {
	g := NewStrict()
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 2
	cfg.InitialTiles = 1
	cfg.SpawnOnNoop = true // overridden by the variant
	if err := g.Configure(cfg); err != nil {
		t.Fatal(err)
	}
	if g.Config().SpawnOnNoop {
		t.Fatal("strict variant accepted SpawnOnNoop")
	}
	g.Reset(runtimeConfig())

	// Press the lone tile into the wall it already touches.
	action := core.ActionLeft
	if g.grid.Tiles()[0].Col == 1 {
		action = core.ActionRight
	}
	g.Step(input(action))
	settle(t, g)

	if g.grid.Len() != 1 {
		t.Errorf("blocked move spawned: %d tiles", g.grid.Len())
	}
	if g.State().Moves != 1 || g.LastResult().Changed {
		t.Errorf("Moves = %d, Changed = %v", g.State().Moves, g.LastResult().Changed)
	}
}

func TestPause(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig())

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	g.Step(input(core.ActionLeft))
	if g.State().Busy || g.State().Moves != 0 {
		t.Error("move started while paused")
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resume")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	cfg := runtimeConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 10
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want paused_small_window", g.Snapshot().State)
	}
	g.Step(input(core.ActionLeft))
	if g.State().Moves != 0 || g.State().Busy {
		t.Error("input accepted on a too-small screen")
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message not rendered")
	}
}

func TestDeterministicGames(t *testing.T) {
	script := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}

	play := func() Snapshot {
		g := New()
		g.Reset(runtimeConfig())
		for _, a := range script {
			g.Step(input(a))
			settle(t, g)
		}
		return g.Snapshot()
	}

	s1, s2 := play(), play()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Moves != len(script) {
		t.Errorf("Moves = %d, want %d", s1.Moves, len(script))
	}
}

func TestRender(t *testing.T) {
	g := New()
	cfg := runtimeConfig()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Moves: 0", "Max: 2", "┌", "┘", "P: Pause"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Tiles are drawn in their palette color.
	found := false
	for y := range screen.Height() {
		for x := range screen.Width() {
			if c := screen.GetCell(x, y); c.Rune == '2' && c.Color == core.TileColor(ColorIndex(2)) {
				found = true
			}
		}
	}
	if !found {
		t.Error("no colored 2 tile rendered")
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	g := New()
	cfg := DefaultConfig()
	cfg.Velocity = 0
	if err := g.Configure(cfg); err == nil {
		t.Error("expected error for zero velocity")
	}
	if g.Config().Velocity != DefaultConfig().Velocity {
		t.Error("invalid config was applied")
	}
}
