package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Exists(zz_stub_a) = false after Register")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("Create returned game %q", g.ID())
	}

	list := List()
	idxA, idxB := -1, -1
	for i, info := range list {
		switch info.ID {
		case "zz_stub_a":
			idxA = i
			if info.Title != "Stub zz_stub_a" {
				t.Errorf("title = %q", info.Title)
			}
		case "zz_stub_b":
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 || idxA > idxB {
		t.Errorf("List() not sorted by ID: a=%d b=%d", idxA, idxB)
	}
}

type ruledGame struct{ stubGame }

func (g *ruledGame) Rules() string { return "spawns on " + g.id }

func TestRegisterRecordsRules(t *testing.T) {
	Register("zz_ruled", func() Game { return &ruledGame{stubGame{id: "zz_ruled"}} })

	info, ok := Info("zz_ruled")
	if !ok {
		t.Fatal("Info(zz_ruled) not found")
	}
	if info.Rules != "spawns on zz_ruled" || info.Title != "Stub zz_ruled" {
		t.Errorf("info = %+v", info)
	}

	Register("zz_plain", func() Game { return &stubGame{id: "zz_plain"} })
	if info, _ := Info("zz_plain"); info.Rules != "" {
		t.Errorf("variant without rules got %q", info.Rules)
	}
	if _, ok := Info("no-such-variant"); ok {
		t.Error("Info(unknown) should report false")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-variant"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Create(unknown) error = %v, want ErrUnknownVariant", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
