package penalty

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/registry"
)

func TestRegistered(t *testing.T) {
	if !registry.Exists("penalty") {
		t.Fatal("penalty not registered")
	}
}

func TestGameInputMapping(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 1})

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	if g.Shootout().Zone() != 3 {
		t.Errorf("zone = %d after left", g.Shootout().Zone())
	}

	in.Clear()
	in.Set(core.ActionSwing)
	g.Step(in)
	if g.Shootout().Stage() != StageCharging {
		t.Fatalf("stage = %v after first press", g.Shootout().Stage())
	}

	in.Clear()
	for i := 0; i < 10; i++ {
		g.Step(in)
	}
	if g.Shootout().Power() == 0 {
		t.Error("meter not running")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Shots left: 5") || !strings.Contains(out, "[") {
		t.Errorf("render missing HUD or meter:\n%s", out)
	}

	in.Set(core.ActionSwing)
	g.Step(in)
	if g.Shootout().Stage() != StageShooting || g.Shootout().Attempts() != 4 {
		t.Errorf("stage %v attempts %d after shooting", g.Shootout().Stage(), g.Shootout().Attempts())
	}
}

func TestGamePlaysToEnd(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 7})

	in := core.NewInputFrame()
	for i := 0; i < 5000 && !g.State().GameOver; i++ {
		in.Clear()
		if i%20 == 0 {
			in.Set(core.ActionSwing)
		}
		g.Step(in)
	}
	if !g.State().GameOver {
		t.Fatal("shootout never ended")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Press R to restart") {
		t.Error("game over box missing")
	}

	in.Clear()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.State().GameOver || g.Shootout().Attempts() != 5 {
		t.Error("restart did not start a new shootout")
	}
}
