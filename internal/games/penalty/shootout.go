package penalty

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/games/cricket/sim"
)

// GridSize is the number of target zones per row and column.
const GridSize = 3

// Target is an aim point in the goal mouth.
type Target struct {
	X      float64 // Goal units from the centre, negative is left
	Height float64 // Only used for drawing
}

// Zones are indexed row by row from the top left.
var Zones = [GridSize * GridSize]Target{
	{-150, 300}, {0, 320}, {150, 300},
	{-120, 250}, {0, 270}, {120, 250},
	{-90, 200}, {0, 220}, {90, 200},
}

// Stage is where the shootout is between shots.
type Stage int

const (
	StageAiming   Stage = iota // Choosing a zone
	StageCharging              // Meter running, next press shoots
	StageShooting              // Ball in the air, keeper about to dive
	StageResult                // Verdict shown
	StageOver                  // All attempts used
)

func (s Stage) String() string {
	switch s {
	case StageAiming:
		return "aiming"
	case StageCharging:
		return "charging"
	case StageShooting:
		return "shooting"
	case StageResult:
		return "result"
	default:
		return "over"
	}
}

// Verdict is the result of a shot.
type Verdict int

const (
	VerdictPending Verdict = iota
	VerdictGoal
	VerdictSaved
	VerdictTooWeak
)

func (v Verdict) String() string {
	switch v {
	case VerdictGoal:
		return "GOAL!"
	case VerdictSaved:
		return "SAVED!"
	case VerdictTooWeak:
		return "Too weak!"
	default:
		return ""
	}
}

// Shot is one penalty from kick to verdict.
type Shot struct {
	Zone     int
	Power    int
	Accuracy float64
	ActualX  float64
	KeeperX  float64
	Dived    bool
	Verdict  Verdict
	KickedAt time.Duration
}

// Summary is the terminal report of a shootout.
type Summary struct {
	FinalScore     int
	HighScore      int
	IsNewHighScore bool
}

// Shootout sequences a penalty shootout on a scheduler.
type Shootout struct {
	cfg    config.PenaltyConfig
	sched  sim.Scheduler
	rng    *rand.Rand
	store  core.KVStore
	logger *log.Logger

	session  string
	score    int
	attempts int
	high     int
	stage    Stage

	zone   int
	power  int
	rising bool

	shot    *Shot
	summary *Summary
	timers  []sim.Timer
	meter   sim.Timer
}

// NewShootout creates an idle shootout. store and logger may be nil.
func NewShootout(cfg config.PenaltyConfig, sched sim.Scheduler, seed int64, store core.KVStore, logger *log.Logger) *Shootout {
	if store == nil {
		store = sim.NewMemoryKV()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shootout{
		cfg:    cfg.Validate(),
		sched:  sched,
		rng:    rand.New(rand.NewSource(seed)),
		store:  store,
		logger: logger,
		stage:  StageOver,
	}
}

// Start begins a new shootout, cancelling anything still scheduled.
func (s *Shootout) Start() {
	s.cancel()
	s.session = uuid.NewString()
	s.score = 0
	s.attempts = s.cfg.Match.Attempts
	s.high = 0
	if v, ok, err := s.store.GetInt(s.cfg.Match.HighScoreKey); err != nil {
		s.logger.Error("read high score", "key", s.cfg.Match.HighScoreKey, "err", err)
	} else if ok {
		s.high = v
	}
	s.summary = nil
	s.resetPositions()
	s.stage = StageAiming
}

// Aim moves the target selection by one zone. It works while aiming and
// while charging.
func (s *Shootout) Aim(dx, dy int) {
	if s.stage != StageAiming && s.stage != StageCharging {
		return
	}
	col := core.Clamp(s.zone%GridSize+dx, 0, GridSize-1)
	row := core.Clamp(s.zone/GridSize+dy, 0, GridSize-1)
	s.zone = row*GridSize + col
}

// Press handles the shoot key: the first press starts the meter, the second
// takes the shot.
func (s *Shootout) Press() {
	switch s.stage {
	case StageAiming:
		s.charge()
	case StageCharging:
		s.shoot()
	}
}

func (s *Shootout) charge() {
	s.stage = StageCharging
	s.power = 0
	s.rising = true
	s.tickMeter(s.session)
}

func (s *Shootout) tickMeter(session string) {
	s.meter = s.sched.After(ms(s.cfg.Meter.IntervalMs), func() {
		if session != s.session || s.stage != StageCharging {
			return
		}
		if s.rising {
			s.power += s.cfg.Meter.Step
			if s.power >= s.cfg.Meter.Max {
				s.power = s.cfg.Meter.Max
				s.rising = false
			}
		} else {
			s.power -= s.cfg.Meter.Step
			if s.power <= 0 {
				s.power = 0
				s.rising = true
			}
		}
		s.tickMeter(session)
	})
}

func (s *Shootout) shoot() {
	s.cancel()
	s.attempts--
	s.stage = StageShooting

	acc := s.cfg.Shot.BaseAccuracy
	if s.power > s.cfg.Shot.SweetMin && s.power < s.cfg.Shot.SweetMax {
		acc = s.cfg.Shot.SweetAccuracy
	}
	target := Zones[s.zone]
	shot := &Shot{
		Zone:     s.zone,
		Power:    s.power,
		Accuracy: acc,
		ActualX:  target.X + (s.rng.Float64()-0.5)*s.cfg.Shot.Spread*(1-acc),
		KickedAt: s.sched.Now(),
	}
	s.shot = shot

	session := s.session
	timing := s.cfg.Timing
	s.after(ms(timing.DiveMs), session, func() {
		shot.KeeperX = s.rng.Float64()*2*s.cfg.Keeper.Reach - s.cfg.Keeper.Reach
		shot.Dived = true

		s.after(ms(timing.ResultMs), session, func() {
			s.decide(shot)
			s.after(ms(timing.ResetMs), session, s.nextShot)
		})
	})
}

func (s *Shootout) decide(shot *Shot) {
	goal := math.Abs(shot.ActualX-shot.KeeperX) > s.cfg.Keeper.SaveRadius && shot.Power > s.cfg.Shot.MinPower
	switch {
	case goal:
		s.score++
		shot.Verdict = VerdictGoal
	case shot.Power < s.cfg.Shot.MinPower:
		shot.Verdict = VerdictTooWeak
	default:
		shot.Verdict = VerdictSaved
	}
	s.stage = StageResult
	s.logger.Debug("shot", "zone", shot.Zone, "power", shot.Power, "x", shot.ActualX, "keeper", shot.KeeperX, "verdict", shot.Verdict)
}

func (s *Shootout) nextShot() {
	if s.attempts <= 0 {
		s.finish()
		return
	}
	s.resetPositions()
	s.stage = StageAiming
}

func (s *Shootout) finish() {
	s.stage = StageOver
	s.cancel()
	s.Finalize()
}

// Finalize settles the high score once the shootout is over. Repeated calls
// return the first summary without touching the store.
func (s *Shootout) Finalize() (Summary, bool) {
	if s.stage != StageOver || s.session == "" {
		return Summary{}, false
	}
	if s.summary != nil {
		return *s.summary, true
	}
	sum := Summary{FinalScore: s.score, HighScore: s.high}
	if s.score > s.high {
		sum.HighScore = s.score
		sum.IsNewHighScore = true
		s.high = s.score
		if err := s.store.SetInt(s.cfg.Match.HighScoreKey, s.score); err != nil {
			s.logger.Error("write high score", "key", s.cfg.Match.HighScoreKey, "err", err)
		}
	}
	s.summary = &sum
	s.logger.Info("shootout over", "score", sum.FinalScore, "high", sum.HighScore, "new", sum.IsNewHighScore)
	return sum, true
}

func (s *Shootout) resetPositions() {
	s.zone = GridSize * GridSize / 2
	s.power = 0
	s.rising = true
	s.shot = nil
}

// after schedules fn unless the shootout has been restarted in between.
func (s *Shootout) after(d time.Duration, session string, fn func()) {
	t := s.sched.After(d, func() {
		if session != s.session {
			s.logger.Debug("stale shootout callback ignored", "session", session)
			return
		}
		fn()
	})
	s.timers = append(s.timers, t)
}

func (s *Shootout) cancel() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = s.timers[:0]
	if s.meter != nil {
		s.meter.Stop()
		s.meter = nil
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Score returns the goals scored so far.
func (s *Shootout) Score() int { return s.score }

// Session returns the id of the current shootout.
func (s *Shootout) Session() string { return s.session }

// Attempts returns the shots left.
func (s *Shootout) Attempts() int { return s.attempts }

// HighScore returns the best score known to this shootout.
func (s *Shootout) HighScore() int { return s.high }

// Stage returns the current stage.
func (s *Shootout) Stage() Stage { return s.stage }

// Zone returns the selected target zone.
func (s *Shootout) Zone() int { return s.zone }

// Power returns the meter reading.
func (s *Shootout) Power() int { return s.power }

// Shot returns the shot in progress or just decided.
func (s *Shootout) Shot() (Shot, bool) {
	if s.shot == nil {
		return Shot{}, false
	}
	return *s.shot, true
}

// Summary returns the final summary once the shootout is over.
func (s *Shootout) Summary() (Summary, bool) {
	if s.summary == nil {
		return Summary{}, false
	}
	return *s.summary, true
}

// Config returns the validated configuration in use.
func (s *Shootout) Config() config.PenaltyConfig { return s.cfg }
