// Package cricket is the terminal front end of TapCricket. It owns a
// simulated clock, feeds key presses to the delivery engine and draws the
// pitch. The game rules live in package sim.
package cricket

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/games/cricket/sim"
	"github.com/vovakirdan/tapcricket/internal/registry"
)

const (
	messageTTL = 2 * time.Second
	swingFlash = 150 * time.Millisecond
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config file.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// banner is a caption shown for a while on the side panel.
type banner struct {
	text  string
	color core.Color
	until time.Duration
}

func (b banner) visible(now time.Duration) bool {
	return b.text != "" && now < b.until
}

// Game adapts the sim engine to the registry.Game interface.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.CricketConfig
	tick     time.Duration
	timeline *sim.Timeline
	engine   *sim.Engine

	store  core.KVStore
	logger *log.Logger

	paused    bool
	message   banner
	feedback  banner
	lastSwing time.Duration
	swung     bool
	lastShot  *sim.DeliveryResolvedEvent
	summary   *sim.Summary
}

// New creates a new TapCricket game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "cricket"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tap Cricket"
}

// Attach implements registry.ServiceUser.
func (g *Game) Attach(s registry.Services) {
	g.store = s.Store
	g.logger = s.Logger
}

// Reset loads the config and starts a fresh match on a new clock.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.store == nil {
		g.store = sim.NewMemoryKV()
	}

	// Load config, falling back to defaults
	cfg, err := config.LoadCricket(configPath)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("using default cricket config", "err", err)
		}
		cfg = config.DefaultCricketConfig()
	}
	if difficultyPreset != "" {
		config.ApplyCricketPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg.Validate()
	g.tick = time.Duration(runtime.TickMillis() * float64(time.Millisecond))

	// Build a fresh engine on its own timeline
	opts := []sim.Option{sim.WithSink(g), sim.WithStore(g.store)}
	if g.logger != nil {
		opts = append(opts, sim.WithLogger(g.logger.WithPrefix("cricket")))
	}
	g.timeline = sim.NewTimeline()
	g.engine = sim.NewEngine(g.cfg, g.timeline, runtime.Seed, opts...)
	g.restart()
}

func (g *Game) restart() {
	g.paused = false
	g.message = banner{}
	g.feedback = banner{}
	g.swung = false
	g.lastShot = nil
	g.summary = nil
	g.engine.Restart()
}

// Step advances the simulated clock by one tick and applies input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine.State().IsOver {
		if in.Has(core.ActionRestart) {
			g.restart()
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

	if in.Has(core.ActionSwing) {
		now := g.timeline.Now()
		g.lastSwing = now
		g.swung = true
		g.engine.Swing(now)
	}

	return core.StepResult{State: g.State()}
}

// Publish implements sim.Sink.
func (g *Game) Publish(ev sim.Event) {
	now := g.timeline.Now()
	switch ev := ev.(type) {
	case sim.MatchStartedEvent:
		g.message = banner{text: "GET READY!", color: core.ColorWhite, until: now + messageTTL}
	case sim.DeliveryStartedEvent:
		a := ev.Delivery.Archetype
		g.message = banner{text: strings.ToUpper(string(a.Label)) + " BALL!", color: labelColor(a.Label), until: now + messageTTL}
		g.feedback = banner{}
	case sim.SwingEvent:
		g.feedback = banner{text: ev.Feedback.String(), color: feedbackColor(ev.Feedback), until: now + messageTTL}
	case sim.DeliveryResolvedEvent:
		shot := ev
		g.lastShot = &shot
		if ev.Outcome == sim.OutcomeHit {
			g.message = banner{text: sim.RunsMessage(ev.Runs, ev.Tier), color: tierColor(ev.Tier), until: now + messageTTL}
		} else {
			g.message = banner{text: "WICKET LOST!", color: core.ColorRed, until: now + messageTTL}
		}
	case sim.GameOverEvent:
		sum := ev.Summary
		g.summary = &sum
	}
}

// MatchID identifies the running match in the score history.
func (g *Game) MatchID() string { return g.engine.MatchID() }

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.engine.State()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.IsOver,
		Paused:   g.paused,
	}
}

// Snapshot captures the observable state for tests.
type Snapshot struct {
	Now       time.Duration
	Score     int
	BallsLeft int
	HighScore int
	Phase     sim.EngineState
	Bowled    int
	BallY     float64
	InFlight  bool
	Message   string
	Feedback  string
}

// Snapshot returns the current observable state.
func (g *Game) Snapshot() Snapshot {
	st := g.engine.State()
	now := g.timeline.Now()
	s := Snapshot{
		Now:       now,
		Score:     st.Score,
		BallsLeft: st.AttemptsRemaining,
		HighScore: st.HighScore,
		Phase:     g.engine.Phase(),
		Bowled:    g.engine.Bowled(),
	}
	if d, ok := g.engine.Active(); ok {
		s.InFlight = true
		s.BallY = d.Position(now)
	}
	if g.message.visible(now) {
		s.Message = g.message.text
	}
	if g.feedback.visible(now) {
		s.Feedback = g.feedback.text
	}
	return s
}

func labelColor(l sim.Label) core.Color {
	switch l {
	case sim.LabelFast:
		return core.ColorRed
	case sim.LabelMedium:
		return core.ColorOrange
	default:
		return core.ColorGreen
	}
}

func feedbackColor(f sim.Feedback) core.Color {
	switch f {
	case sim.FeedbackPerfect:
		return core.ColorBrightGreen
	case sim.FeedbackGood:
		return core.ColorGreen
	case sim.FeedbackOK:
		return core.ColorYellow
	case sim.FeedbackEarly, sim.FeedbackLate:
		return core.ColorOrange
	default:
		return core.ColorRed
	}
}

func tierColor(t sim.Tier) core.Color {
	switch t {
	case sim.TierPerfect:
		return core.ColorGold
	case sim.TierGood:
		return core.ColorBrightGreen
	default:
		return core.ColorYellow
	}
}

func init() {
	registry.Register("cricket", func() registry.Game {
		return New()
	})
}
