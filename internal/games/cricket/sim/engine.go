package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/core"
)

// Option customizes an Engine.
type Option func(*Engine)

// WithSelector overrides the seeded random selector.
func WithSelector(s Selector) Option {
	return func(e *Engine) { e.selector = s }
}

// WithSink sets where events are published.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithStore sets the persisted store for the high score.
func WithStore(s core.KVStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine runs one match at a time: it bowls deliveries on the scheduler,
// judges swings and keeps the score. All methods must be called from the
// goroutine that drives the scheduler.
type Engine struct {
	cfg        config.CricketConfig
	sched      Scheduler
	rng        *rand.Rand
	selector   Selector
	judge      Judge
	policy     ScoringPolicy
	difficulty *config.DifficultyManager
	sink       Sink
	store      core.KVStore
	logger     *log.Logger

	matchID string
	state   MatchState
	phase   EngineState
	active  *Delivery
	bowled  int
	summary *Summary

	deliveryTimers []Timer
	nextBall       Timer
	safety         Timer
}

// NewEngine creates an idle engine. Call Start to begin a match.
func NewEngine(cfg config.CricketConfig, sched Scheduler, seed int64, opts ...Option) *Engine {
	cfg = cfg.Validate()
	e := &Engine{
		cfg:        cfg,
		sched:      sched,
		rng:        rand.New(rand.NewSource(seed)),
		judge:      NewJudge(cfg.Judge),
		policy:     NewScoringPolicy(cfg.Scoring, cfg.Judge.HitThreshold),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		sink:       nopSink{},
		phase:      StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selector == nil {
		e.selector = NewRandomSelector(e.rng)
	}
	if e.sink == nil {
		e.sink = nopSink{}
	}
	if e.store == nil {
		e.store = NewMemoryKV()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Start begins a fresh match, discarding any match in progress along with
// all of its pending callbacks. The first ball is bowled after the
// configured delay.
func (e *Engine) Start() {
	e.cancelAll()

	e.matchID = uuid.NewString()
	e.state = NewMatchState(e.cfg.Match.Attempts, e.loadHighScore())
	e.phase = StateIdle
	e.active = nil
	e.bowled = 0
	e.summary = nil

	e.logger.Debug("match started", "match", e.matchID, "attempts", e.state.AttemptsRemaining, "high", e.state.HighScore)
	e.sink.Publish(MatchStartedEvent{MatchID: e.matchID, State: e.state})

	e.scheduleNextBall(millis(float64(e.cfg.Match.FirstBallMs)))
	e.armSafety()
}

// Restart is Start under the name the UI uses.
func (e *Engine) Restart() {
	e.Start()
}

// Stop cancels every pending callback. The match state is left as is.
func (e *Engine) Stop() {
	e.cancelAll()
}

// Spawn bowls the next delivery now. It reports false, without changing any
// state, when a delivery is already in flight or the match is over.
func (e *Engine) Spawn() bool {
	if e.matchID == "" || e.state.IsOver {
		e.logger.Debug("spawn ignored: no running match")
		return false
	}
	if e.active != nil {
		e.logger.Warn("spawn rejected: delivery already in flight", "delivery", e.active.ID)
		return false
	}
	stop(&e.nextBall)

	// Pick the delivery and its path
	a := e.selector.Select()
	spawnY := e.cfg.Pitch.SpawnY + (e.rng.Float64()*2-1)*e.cfg.Pitch.SpawnJitter
	pace := e.difficulty.Pace(e.state.Score, e.bowled)
	tr := NewTrajectory(e.cfg, a, spawnY, pace)

	e.bowled++
	d := newDelivery(uuid.NewString(), e.bowled, a, tr, e.sched.Now())
	e.active = &d
	e.phase = StateInFlight

	// Phase timers are tied to this delivery's id
	id := d.ID
	e.deliveryTimers = append(e.deliveryTimers,
		e.sched.After(tr.HittableFrom(), func() { e.onHittable(id) }),
		e.sched.After(tr.Total(), func() { e.onTerminus(id) }),
	)
	e.armSafety()

	e.logger.Debug("delivery bowled", "delivery", id, "seq", d.Seq, "type", a.Label, "pace", pace)
	e.sink.Publish(DeliveryStartedEvent{Delivery: d})
	return true
}

// SwingKind classifies the engine's reaction to a swing.
type SwingKind int

const (
	SwingIgnored     SwingKind = iota // No live delivery
	SwingNotHittable                  // Ball not playable yet; counts as a miss but keeps the delivery live
	SwingHit                          // Connected and scored
	SwingMissed                       // Inside the window but too far off; wicket lost
)

func (k SwingKind) String() string {
	switch k {
	case SwingIgnored:
		return "ignored"
	case SwingNotHittable:
		return "not-hittable"
	case SwingHit:
		return "hit"
	default:
		return "missed"
	}
}

// SwingResult is the outcome of a single swing.
type SwingResult struct {
	Kind       SwingKind
	DeliveryID string
	Position   float64
	Accuracy   float64
	Runs       int
	Tier       Tier
	Feedback   Feedback
}

// Swing judges a swing made at scheduler time at. Swings with no live
// delivery are no-ops.
func (e *Engine) Swing(at time.Duration) SwingResult {
	if e.phase != StateInFlight || e.active == nil {
		return SwingResult{Kind: SwingIgnored}
	}
	d := *e.active
	pos := d.Position(at)
	contact := e.cfg.Pitch.ContactY
	res := SwingResult{
		DeliveryID: d.ID,
		Position:   pos,
		Feedback:   TimingFeedback(pos, contact, e.cfg.Pitch.ZoneBefore, e.cfg.Pitch.ZoneAfter),
	}

	// Too early: the ball stays live
	if !d.Hittable(at) {
		res.Kind = SwingNotHittable
		e.sink.Publish(SwingEvent{DeliveryID: d.ID, At: at, Position: pos, Feedback: res.Feedback})
		return res
	}

	res.Accuracy = e.judge.Accuracy(pos, contact, d.Archetype.Difficulty)
	res.Tier = e.policy.Tier(res.Accuracy)
	e.sink.Publish(SwingEvent{
		DeliveryID: d.ID,
		At:         at,
		Position:   pos,
		Accuracy:   res.Accuracy,
		Feedback:   res.Feedback,
		Accepted:   true,
	})

	// The one accepted swing ends the delivery either way
	if e.judge.Connects(res.Accuracy) {
		res.Kind = SwingHit
		res.Runs = e.policy.Runs(d.Archetype.RunValue, res.Accuracy)
		e.resolve(OutcomeHit, res.Runs, res.Accuracy)
		return res
	}
	res.Kind = SwingMissed
	res.Tier = TierMiss
	e.resolve(OutcomeMissedSwing, 0, res.Accuracy)
	return res
}

// Finalize settles the high score for a finished match. The store is read
// and written at most once per match; later calls return the same summary.
// ok is false while the match is still running.
func (e *Engine) Finalize() (sum Summary, ok bool) {
	if !e.state.IsOver {
		return Summary{}, false
	}
	if e.summary != nil {
		return *e.summary, true
	}

	// Re-read the stored best; another session may have raised it
	stored := e.state.HighScore
	if v, found, err := e.store.GetInt(e.cfg.Match.HighScoreKey); err != nil {
		e.logger.Error("read high score", "key", e.cfg.Match.HighScoreKey, "err", err)
	} else if found {
		stored = v
	}

	e.state, sum = e.state.Finalize(stored)
	if sum.IsNewHighScore {
		if err := e.store.SetInt(e.cfg.Match.HighScoreKey, sum.HighScore); err != nil {
			e.logger.Error("write high score", "key", e.cfg.Match.HighScoreKey, "err", err)
		}
	}
	e.summary = &sum
	return sum, true
}

// State returns the current match state.
func (e *Engine) State() MatchState { return e.state }

// Phase returns the round state machine position.
func (e *Engine) Phase() EngineState { return e.phase }

// Active returns the live delivery, if any.
func (e *Engine) Active() (Delivery, bool) {
	if e.active == nil {
		return Delivery{}, false
	}
	return *e.active, true
}

// Summary returns the final summary once the match is over.
func (e *Engine) Summary() (Summary, bool) {
	if e.summary == nil {
		return Summary{}, false
	}
	return *e.summary, true
}

// MatchID identifies the current match. Empty before Start.
func (e *Engine) MatchID() string { return e.matchID }

// Bowled returns the number of deliveries bowled this match.
func (e *Engine) Bowled() int { return e.bowled }

// Now returns the scheduler time.
func (e *Engine) Now() time.Duration { return e.sched.Now() }

// Config returns the validated configuration in use.
func (e *Engine) Config() config.CricketConfig { return e.cfg }

func (e *Engine) onHittable(id string) {
	if e.isStale(id) {
		e.logger.Debug("stale hittable callback ignored", "delivery", id)
		return
	}
	e.sink.Publish(BallHittableEvent{DeliveryID: id, At: e.sched.Now()})
}

func (e *Engine) onTerminus(id string) {
	if e.isStale(id) {
		e.logger.Debug("stale terminus callback ignored", "delivery", id)
		return
	}
	e.resolve(OutcomeUnplayed, 0, 0)
}

func (e *Engine) isStale(id string) bool {
	return e.active == nil || e.active.ID != id
}

func (e *Engine) resolve(outcome Outcome, runs int, accuracy float64) {
	d := *e.active
	e.cancelDeliveryTimers()
	e.active = nil
	e.state = e.state.Resolve(runs)
	e.phase = StateResolved

	tier := TierMiss
	if outcome == OutcomeHit {
		tier = e.policy.Tier(accuracy)
	}
	e.logger.Debug("delivery resolved", "delivery", d.ID, "outcome", outcome, "runs", runs, "score", e.state.Score, "left", e.state.AttemptsRemaining)
	e.sink.Publish(DeliveryResolvedEvent{
		Delivery: d,
		Outcome:  outcome,
		Runs:     runs,
		Accuracy: accuracy,
		Tier:     tier,
		State:    e.state,
	})

	if e.state.IsOver {
		e.finish()
		return
	}
	e.scheduleNextBall(e.cooldown())
	e.armSafety()
}

func (e *Engine) finish() {
	e.phase = StateGameOver
	e.cancelAll()
	sum, _ := e.Finalize()
	e.logger.Info("match over", "match", e.matchID, "score", sum.FinalScore, "high", sum.HighScore, "new", sum.IsNewHighScore)
	e.sink.Publish(GameOverEvent{MatchID: e.matchID, Summary: sum, State: e.state})
}

func (e *Engine) scheduleNextBall(delay time.Duration) {
	stop(&e.nextBall)
	match := e.matchID
	e.nextBall = e.sched.After(delay, func() {
		if match != e.matchID {
			e.logger.Debug("stale next-ball callback ignored", "match", match)
			return
		}
		e.nextBall = nil
		e.Spawn()
	})
}

// armSafety restarts the backstop that forces a delivery if the normal
// scheduling chain was lost.
func (e *Engine) armSafety() {
	stop(&e.safety)
	if e.cfg.Match.SafetyMs <= 0 {
		return
	}
	match := e.matchID
	e.safety = e.sched.After(millis(float64(e.cfg.Match.SafetyMs)), func() {
		e.safety = nil
		if match != e.matchID || e.state.IsOver {
			return
		}
		if e.active != nil {
			e.armSafety()
			return
		}
		e.logger.Warn("no delivery for too long, forcing one", "match", match, "after_ms", e.cfg.Match.SafetyMs)
		e.Spawn()
	})
}

func (e *Engine) cooldown() time.Duration {
	lo, hi := e.cfg.Match.CooldownMinMs, e.cfg.Match.CooldownMaxMs
	ms := lo
	if hi > lo {
		ms += e.rng.Intn(hi - lo + 1)
	}
	return time.Duration(ms) * time.Millisecond
}

func (e *Engine) loadHighScore() int {
	v, ok, err := e.store.GetInt(e.cfg.Match.HighScoreKey)
	if err != nil {
		e.logger.Error("read high score", "key", e.cfg.Match.HighScoreKey, "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	return v
}

func (e *Engine) cancelDeliveryTimers() {
	for _, t := range e.deliveryTimers {
		t.Stop()
	}
	e.deliveryTimers = e.deliveryTimers[:0]
}

func (e *Engine) cancelAll() {
	e.cancelDeliveryTimers()
	stop(&e.nextBall)
	stop(&e.safety)
}

func stop(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
