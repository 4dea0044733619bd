package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func mustSession(t *testing.T, m tea.Model) SessionModel {
	t.Helper()
	sm, ok := m.(SessionModel)
	if !ok {
		t.Fatalf("got %T, want SessionModel", m)
	}
	return sm
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", nil)
	if m.SessionID() == "" {
		t.Fatal("empty session id")
	}
	if !strings.Contains(m.View(), "Stub Game") {
		t.Fatalf("menu does not list the registered game:\n%s", m.View())
	}

	m = mustSession(t, first(m.Update(press("enter"))))
	if m.current != screenGame {
		t.Fatalf("screen = %v, want game", m.current)
	}
	g, ok := m.gameModel.game.(*stubGame)
	if !ok {
		t.Fatalf("game is %T", m.gameModel.game)
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}

	m = mustSession(t, first(m.Update(press(" "))))
	m = mustSession(t, first(m.Update(TickMsg{})))
	if g.swings != 1 {
		t.Errorf("swings = %d, want 1", g.swings)
	}

	g.over = true
	m = mustSession(t, first(m.Update(TickMsg{})))
	m = mustSession(t, first(m.Update(press("esc"))))
	if m.current != screenMenu {
		t.Errorf("screen = %v after back, want menu", m.current)
	}
	if m.menu.Selected() != nil {
		t.Error("fresh menu still has a selection")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", nil)

	m = mustSession(t, first(m.Update(press("tab"))))
	if m.current != screenScores {
		t.Fatalf("screen = %v, want scores", m.current)
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Errorf("scoreboard without store:\n%s", m.View())
	}

	m = mustSession(t, first(m.Update(press("esc"))))
	if m.current != screenMenu {
		t.Errorf("screen = %v, want menu", m.current)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", nil)
	m = mustSession(t, first(m.Update(press("q"))))
	if !m.quitting || m.View() != "" {
		t.Error("q did not end the session")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", nil)
	m = mustSession(t, first(m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})))
	m = mustSession(t, first(m.Update(press("enter"))))
	if w := m.gameModel.screen.Width(); w != 120 {
		t.Errorf("game screen width = %d, want 120", w)
	}
}
