package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/registry"
	"github.com/vovakirdan/tapcricket/internal/storage"
)

// stubGame scores one point per swing and ends once over is set.
type stubGame struct {
	resets  int
	swings  int
	score   int
	over    bool
	paused  bool
	matchID string
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub Game" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.score, g.over, g.paused = 0, false, false
	g.matchID = "match-1"
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.over {
		if in.Has(core.ActionRestart) {
			g.score, g.over = 0, false
			g.matchID = "match-2"
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionSwing) {
		g.swings++
		g.score++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "STUB")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over, Paused: g.paused}
}

func (g *stubGame) MatchID() string { return g.matchID }

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

type savedScore struct {
	gameID, matchID string
	score           int
}

type fakeSaver struct {
	saved []savedScore
}

func (f *fakeSaver) SaveMatchScore(gameID, matchID string, score int) (int64, error) {
	f.saved = append(f.saved, savedScore{gameID, matchID, score})
	return int64(len(f.saved)), nil
}

type fakeSource struct {
	scores map[string][]storage.ScoreEntry
}

func (f fakeSource) TopScores(gameID string, limit int) ([]storage.ScoreEntry, error) {
	s := f.scores[gameID]
	if len(s) > limit {
		s = s[:limit]
	}
	return s, nil
}

func (f fakeSource) GetGameStats(gameID string) (*storage.GameStats, error) {
	st := &storage.GameStats{GameID: gameID, GamesCount: len(f.scores[gameID])}
	for _, e := range f.scores[gameID] {
		st.HighScore = max(st.HighScore, e.Score)
	}
	return st, nil
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func mustGame(t *testing.T, m tea.Model) GameModel {
	t.Helper()
	gm, ok := m.(GameModel)
	if !ok {
		t.Fatalf("got %T, want GameModel", m)
	}
	return gm
}

// first drops the command from an Update result.
func first(m tea.Model, _ tea.Cmd) tea.Model { return m }
