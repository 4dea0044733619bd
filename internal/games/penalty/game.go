// Package penalty implements a penalty shootout: pick a corner, stop the
// power meter in the sweet spot and beat the keeper.
package penalty

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/games/cricket/sim"
	"github.com/vovakirdan/tapcricket/internal/registry"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	KeeperChar = '♜'
	NetChar    = '░'
	PostChar   = '█'
	AimChar    = '◎'
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a Shootout to the registry.Game interface.
type Game struct {
	runtime  core.RuntimeConfig
	tick     time.Duration
	timeline *sim.Timeline
	shootout *Shootout
	paused   bool

	store  core.KVStore
	logger *log.Logger
}

// New creates a new penalty shootout game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "penalty"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Penalty Shootout"
}

// Attach implements registry.ServiceUser.
func (g *Game) Attach(s registry.Services) {
	g.store = s.Store
	g.logger = s.Logger
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	// Load config, falling back to defaults
	cfg, err := config.LoadPenalty(configPath)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("using default penalty config", "err", err)
		}
		cfg = config.DefaultPenaltyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPenaltyPreset(&cfg, difficultyPreset)
	}

	logger := g.logger
	if logger != nil {
		logger = logger.WithPrefix("penalty")
	}
	if g.store == nil {
		g.store = sim.NewMemoryKV()
	}

	// Start a new shootout
	g.tick = time.Duration(runtime.TickMillis() * float64(time.Millisecond))
	g.timeline = sim.NewTimeline()
	g.shootout = NewShootout(cfg, g.timeline, runtime.Seed, g.store, logger)
	g.paused = false
	g.shootout.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.shootout.Stage() == StageOver {
		if in.Has(core.ActionRestart) {
			g.paused = false
			g.shootout.Start()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.timeline.Advance(g.tick)

	switch {
	case in.Has(core.ActionLeft):
		g.shootout.Aim(-1, 0)
	case in.Has(core.ActionRight):
		g.shootout.Aim(1, 0)
	case in.Has(core.ActionUp):
		g.shootout.Aim(0, -1)
	case in.Has(core.ActionDown):
		g.shootout.Aim(0, 1)
	}
	if in.Has(core.ActionSwing) {
		g.shootout.Press()
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.shootout.Score(),
		GameOver: g.shootout.Stage() == StageOver,
		Paused:   g.paused,
	}
}

// goal is the screen placement of the goal mouth.
type goal struct {
	x, y, w, h int
	reach      float64
}

func (gl goal) col(x float64) int {
	return core.Clamp(core.Remap(x, -gl.reach, gl.reach, gl.x+1, gl.x+gl.w-2), gl.x+1, gl.x+gl.w-2)
}

// Render draws the goal, keeper, ball, aim grid and power meter.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.shootout
	cfg := s.Config()

	w := core.Clamp(dst.Width()-10, 20, 60)
	gl := goal{x: (dst.Width() - w) / 2, y: 3, w: w, h: 9, reach: cfg.Keeper.Reach + 10}

	// Frame and net
	dst.DrawRect(core.NewRect(gl.x+1, gl.y+1, gl.w-2, gl.h-1), NetChar)
	for y := gl.y; y < gl.y+gl.h+1; y++ {
		dst.SetColored(gl.x, y, PostChar, core.ColorWhite)
		dst.SetColored(gl.x+gl.w-1, y, PostChar, core.ColorWhite)
	}
	dst.DrawHLine(gl.x, gl.y, gl.w, PostChar, core.ColorWhite)

	// Aim grid
	if st := s.Stage(); st == StageAiming || st == StageCharging {
		cellW := (gl.w - 2) / GridSize
		cellH := (gl.h - 1) / GridSize
		for i := 0; i < GridSize*GridSize; i++ {
			cx := gl.x + 1 + (i%GridSize)*cellW + cellW/2
			cy := gl.y + 1 + (i/GridSize)*cellH + cellH/2
			if i == s.Zone() {
				dst.SetColored(cx, cy, AimChar, core.ColorBrightYellow)
			} else {
				dst.SetColored(cx, cy, '·', core.ColorGray)
			}
		}
	}

	keeperRow := gl.y + gl.h - 1
	spotRow := min(dst.Height()-6, gl.y+gl.h+5)
	keeperCol := gl.col(0)
	if shot, ok := s.Shot(); ok {
		if shot.Dived {
			keeperCol = gl.col(shot.KeeperX)
		}
		g.drawBall(dst, gl, shot, spotRow)
	} else {
		dst.SetColored(gl.col(0), spotRow, BallChar, core.ColorWhite)
	}
	dst.DrawTextColored(keeperCol-1, keeperRow, string([]rune{'\\', KeeperChar, '/'}), core.ColorOrange)

	g.drawHUD(dst)
	g.drawMeter(dst, spotRow+2)

	if g.paused {
		dst.DrawMessageBox([]string{"PAUSED", "", "Press P to resume"}, core.ColorWhite)
	}
	if sum, ok := s.Summary(); ok {
		best := fmt.Sprintf("GAME OVER! SCORE: %d", sum.FinalScore)
		if sum.IsNewHighScore {
			best = fmt.Sprintf("NEW HIGH SCORE: %d!", sum.FinalScore)
		}
		dst.DrawMessageBox([]string{best, "", fmt.Sprintf("Best: %d", sum.HighScore), "", "Press R to restart"}, core.ColorGold)
	}
}

func (g *Game) drawBall(dst *core.Screen, gl goal, shot Shot, spotRow int) {
	cfg := g.shootout.Config()
	flight := ms(cfg.Timing.DiveMs + cfg.Timing.ResultMs)
	u := 1.0
	if flight > 0 {
		u = core.ClampF(float64(g.timeline.Now()-shot.KickedAt)/float64(flight), 0, 1)
	}
	target := Zones[shot.Zone]
	endRow := gl.y + 1 + int((1-(target.Height-200)/120)*float64(gl.h-3))
	row := spotRow + int(float64(endRow-spotRow)*u)
	col := gl.col(0) + int(float64(gl.col(shot.ActualX)-gl.col(0))*u)
	dst.SetColored(col, row, BallChar, core.ColorWhite)

	if shot.Verdict != VerdictPending {
		color := core.ColorRed
		if shot.Verdict == VerdictGoal {
			color = core.ColorBrightGreen
		}
		dst.DrawTextCentered(gl.y+gl.h+2, shot.Verdict.String(), color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.shootout
	dst.DrawText(2, 0, fmt.Sprintf(" Goals: %d  Shots left: %d  Best: %d ", s.Score(), s.Attempts(), s.HighScore()))
	dst.DrawTextColored(2, dst.Height()-1, "ARROWS aim  SPACE charge/shoot  P pause  Q quit", core.ColorGray)
}

func (g *Game) drawMeter(dst *core.Screen, y int) {
	s := g.shootout
	if s.Stage() != StageCharging && s.Stage() != StageShooting {
		if s.Stage() == StageAiming {
			dst.DrawTextCentered(y, "Press SPACE to charge", core.ColorGray)
		}
		return
	}
	cfg := s.Config()
	const width = 30
	filled := s.Power() * width / cfg.Meter.Max
	color := core.ColorYellow
	if s.Power() > cfg.Shot.SweetMin && s.Power() < cfg.Shot.SweetMax {
		color = core.ColorBrightGreen
	}
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat(" ", width-filled) + "]"
	dst.DrawTextCentered(y, fmt.Sprintf("%s %3d", bar, s.Power()), color)
}

// Shootout exposes the underlying logic for tests and tools.
func (g *Game) Shootout() *Shootout { return g.shootout }

// MatchID identifies the running shootout in the score history.
func (g *Game) MatchID() string { return g.shootout.Session() }

func init() {
	registry.Register("penalty", func() registry.Game {
		return New()
	})
}
