package cricket

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/games/cricket/sim"
	"github.com/vovakirdan/tapcricket/internal/registry"
)

func newTestGame(t *testing.T, tickRate int) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: 99})
	return g
}

func stepN(g *Game, n int, actions ...core.Action) {
	in := core.NewInputFrame()
	for i := 0; i < n; i++ {
		in.Clear()
		if i == 0 {
			for _, a := range actions {
				in.Set(a)
			}
		}
		g.Step(in)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("cricket") {
		t.Fatal("cricket not registered")
	}
	g, err := registry.Create("cricket")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Tap Cricket" {
		t.Errorf("title = %q", g.Title())
	}
}

func TestFirstBallArrives(t *testing.T) {
	g := newTestGame(t, 60)

	snap := g.Snapshot()
	if snap.InFlight || snap.BallsLeft != 5 || snap.Message != "GET READY!" {
		t.Fatalf("initial snapshot = %+v", snap)
	}

	stepN(g, 130) // a little over two seconds
	snap = g.Snapshot()
	if !snap.InFlight || snap.Bowled != 1 {
		t.Fatalf("no delivery after 2s: %+v", snap)
	}
	if !strings.HasSuffix(snap.Message, "BALL!") {
		t.Errorf("message = %q", snap.Message)
	}
}

func TestSwingAtContactScores(t *testing.T) {
	g := newTestGame(t, 1000)
	in := core.NewInputFrame()

	for i := 0; i < 10000; i++ {
		if _, ok := g.engine.Active(); ok {
			break
		}
		g.Step(in)
	}
	d, ok := g.engine.Active()
	if !ok {
		t.Fatal("no delivery")
	}
	for g.timeline.Now() < d.IdealSwingTime()-g.tick {
		g.Step(in)
	}
	in.Set(core.ActionSwing)
	g.Step(in)

	snap := g.Snapshot()
	if snap.Score != d.Archetype.RunValue {
		t.Errorf("score = %d, want %d", snap.Score, d.Archetype.RunValue)
	}
	if snap.BallsLeft != 4 || snap.InFlight {
		t.Errorf("snapshot after hit = %+v", snap)
	}
	if snap.Feedback != sim.FeedbackPerfect.String() {
		t.Errorf("feedback = %q", snap.Feedback)
	}

	// A hit still uses up one of the match's balls.
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	want := fmt.Sprintf("Score: %d  Balls: 4", d.Archetype.RunValue)
	if out := screen.String(); !strings.Contains(out, want) {
		t.Errorf("HUD after hit missing %q", want)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := newTestGame(t, 60)
	stepN(g, 10)
	before := g.Snapshot().Now

	stepN(g, 50, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game not paused")
	}
	if now := g.Snapshot().Now; now != before {
		t.Errorf("clock moved while paused: %v -> %v", before, now)
	}

	stepN(g, 10, core.ActionPause)
	if g.State().Paused || g.Snapshot().Now <= before {
		t.Error("clock did not resume")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, 10)
	in := core.NewInputFrame()
	for i := 0; i < 5000 && !g.State().GameOver; i++ {
		g.Step(in)
	}
	if !g.State().GameOver {
		t.Fatal("match never ended")
	}
	oldMatch := g.engine.MatchID()

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over box not rendered")
	}

	// Other input is ignored once the match is over
	stepN(g, 5, core.ActionSwing)
	if !g.State().GameOver {
		t.Fatal("swing revived a finished match")
	}

	stepN(g, 1, core.ActionRestart)
	snap := g.Snapshot()
	if g.State().GameOver || snap.Score != 0 || snap.BallsLeft != 5 || snap.Bowled != 0 {
		t.Errorf("after restart = %+v", snap)
	}
	if g.engine.MatchID() == oldMatch {
		t.Error("restart kept the match id")
	}
}

func TestHighScoreFromStore(t *testing.T) {
	kv := sim.NewMemoryKV()
	if err := kv.SetInt("tapcricket_highscore", 12); err != nil {
		t.Fatal(err)
	}
	g := New()
	g.Attach(registry.Services{Store: kv})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	if hs := g.Snapshot().HighScore; hs != 12 {
		t.Errorf("high score = %d, want 12", hs)
	}
}

func TestHardPresetShortensMatch(t *testing.T) {
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := newTestGame(t, 60)
	if w := g.Snapshot().BallsLeft; w != 3 {
		t.Errorf("balls left = %d, want 3", w)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, 60)
	stepN(g, 130)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Score: 0", "Balls: 5", "SPACE swing"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q", want)
		}
	}
	if !strings.ContainsRune(out, BallChar) && !strings.ContainsRune(out, BounceChar) {
		t.Error("ball not drawn")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 60)
		in := core.NewInputFrame()
		for i := 0; i < 900; i++ {
			in.Clear()
			if i%45 == 0 {
				in.Set(core.ActionSwing)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}
