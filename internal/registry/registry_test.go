package registry

import (
	"testing"

	"github.com/vovakirdan/tapcricket/internal/core"
)

type stubGame struct {
	id       string
	attached *Services
}

func (g *stubGame) ID() string {
	return g.id
}

func (g *stubGame) Title() string {
	return "Stub " + g.id
}

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState {
	return core.GameState{}
}

func (g *stubGame) Attach(s Services) {
	g.attached = &s
}

func TestRegisterListCreate(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered game not found")
	}
	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub zz-stub"
		}
	}
	if !found {
		t.Error("List() missing registered game or title")
	}

	if _, err := Create("no-such-game"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	g, err := CreateWith("zz-stub", Services{})
	if err != nil {
		t.Fatalf("CreateWith: %v", err)
	}
	if g.(*stubGame).attached == nil {
		t.Error("services not attached")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}
