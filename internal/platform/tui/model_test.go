package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newStubModel(t *testing.T, saver ScoreSaver) (GameModel, *stubGame) {
	t.Helper()
	g := &stubGame{}
	m := NewGameModel(g, saver, testConfig(), nil)
	m.Init()
	return m, g
}

func TestKeysReachGameOnTick(t *testing.T) {
	m, g := newStubModel(t, nil)

	m = mustGame(t, first(m.Update(press(" "))))
	if g.swings != 0 {
		t.Fatal("input applied before the tick")
	}
	m = mustGame(t, first(m.Update(TickMsg{})))
	if g.swings != 1 {
		t.Fatalf("swings = %d, want 1", g.swings)
	}

	// The frame is cleared after each tick.
	mustGame(t, first(m.Update(TickMsg{})))
	if g.swings != 1 {
		t.Errorf("swings = %d after empty tick, want 1", g.swings)
	}
}

func TestScoreSavedOncePerGameOver(t *testing.T) {
	saver := &fakeSaver{}
	m, g := newStubModel(t, saver)

	m = mustGame(t, first(m.Update(press(" "))))
	m = mustGame(t, first(m.Update(TickMsg{})))
	g.over = true
	for range 3 {
		m = mustGame(t, first(m.Update(TickMsg{})))
	}
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(saver.saved))
	}
	want := savedScore{"stub", "match-1", 1}
	if saver.saved[0] != want {
		t.Errorf("saved %+v, want %+v", saver.saved[0], want)
	}

	// Restart, score again, and finish: a second row with the new match id.
	m = mustGame(t, first(m.Update(press("r"))))
	m = mustGame(t, first(m.Update(TickMsg{})))
	m = mustGame(t, first(m.Update(press(" "))))
	m = mustGame(t, first(m.Update(TickMsg{})))
	g.over = true
	mustGame(t, first(m.Update(TickMsg{})))

	if len(saver.saved) != 2 || saver.saved[1].matchID != "match-2" {
		t.Errorf("saved = %+v, want a second row for match-2", saver.saved)
	}
}

func TestZeroScoreNotSaved(t *testing.T) {
	saver := &fakeSaver{}
	m, g := newStubModel(t, saver)
	g.over = true
	mustGame(t, first(m.Update(TickMsg{})))
	if len(saver.saved) != 0 {
		t.Errorf("saved %+v, want nothing", saver.saved)
	}
}

func TestBackOnlyWhenOverOrPaused(t *testing.T) {
	m, g := newStubModel(t, nil)
	m = mustGame(t, first(m.Update(TickMsg{})))

	m = mustGame(t, first(m.Update(press("esc"))))
	if m.BackToMenu() {
		t.Fatal("back accepted mid-game")
	}

	g.over = true
	m = mustGame(t, first(m.Update(TickMsg{})))
	m = mustGame(t, first(m.Update(press("esc"))))
	if !m.BackToMenu() {
		t.Error("back ignored after game over")
	}
}

func TestStandaloneBackQuits(t *testing.T) {
	m, g := newStubModel(t, nil)
	m.standalone = true
	g.over = true
	m = mustGame(t, first(m.Update(TickMsg{})))
	m = mustGame(t, first(m.Update(press("b"))))
	if !m.IsQuitting() || m.BackToMenu() {
		t.Errorf("quitting=%v back=%v, want quit", m.IsQuitting(), m.BackToMenu())
	}
}

func TestResizeKeepsMatch(t *testing.T) {
	m, g := newStubModel(t, nil)
	m = mustGame(t, first(m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})))
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newStubModel(t, nil)
	m = mustGame(t, first(m.Update(press("q"))))
	if !m.IsQuitting() {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestViewRendersGame(t *testing.T) {
	m, _ := newStubModel(t, nil)
	out := m.View()
	if !strings.Contains(out, "STUB") {
		t.Errorf("view missing game output: %q", out)
	}
}
