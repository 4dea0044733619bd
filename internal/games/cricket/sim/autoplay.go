package sim

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcricket/internal/config"
	"github.com/vovakirdan/tapcricket/internal/core"
)

// Batter is a bot that swings at every delivery. Its reaction error is
// normally distributed around the ideal contact time.
type Batter struct {
	sched   Scheduler
	engine  *Engine
	rng     *rand.Rand
	errorMs float64
}

// NewBatter creates a bot with the given standard deviation of timing error.
func NewBatter(sched Scheduler, seed int64, errorMs float64) *Batter {
	return &Batter{
		sched:   sched,
		rng:     rand.New(rand.NewSource(seed)),
		errorMs: errorMs,
	}
}

// Bind attaches the bot to the engine it plays against.
func (b *Batter) Bind(e *Engine) { b.engine = e }

// Publish implements Sink. The swing is scheduled, not made inline, and is
// dropped if its delivery is no longer the live one.
func (b *Batter) Publish(ev Event) {
	ds, ok := ev.(DeliveryStartedEvent)
	if !ok || b.engine == nil {
		return
	}
	id := ds.Delivery.ID
	offset := time.Duration(b.rng.NormFloat64() * b.errorMs * float64(time.Millisecond))
	at := ds.Delivery.IdealSwingTime() + offset
	b.sched.After(at-b.sched.Now(), func() {
		// A late swing must not land on the next ball.
		if d, ok := b.engine.Active(); !ok || d.ID != id {
			return
		}
		b.engine.Swing(b.sched.Now())
	})
}

// MatchReport is the result of a headless match.
type MatchReport struct {
	MatchID    string
	Summary    Summary
	Deliveries []DeliveryResolvedEvent
	Duration   time.Duration // Simulated time from start to game over
}

// RunMatch plays one full match headlessly with a bot batter and returns
// its report. Simulated time jumps straight to each pending callback.
func RunMatch(cfg config.CricketConfig, seed int64, errorMs float64, store core.KVStore, logger *log.Logger) MatchReport {
	tl := NewTimeline()
	bot := NewBatter(tl, seed+1, errorMs)

	var rep MatchReport
	done := false
	collect := SinkFunc(func(ev Event) {
		switch ev := ev.(type) {
		case DeliveryResolvedEvent:
			rep.Deliveries = append(rep.Deliveries, ev)
		case GameOverEvent:
			rep.Summary = ev.Summary
			done = true
		}
	})

	opts := []Option{WithSink(MultiSink{bot, collect}), WithStore(store)}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	e := NewEngine(cfg, tl, seed, opts...)
	bot.Bind(e)
	e.Start()
	rep.MatchID = e.MatchID()

	for !done {
		next, ok := tl.NextAt()
		if !ok {
			break
		}
		tl.AdvanceTo(next)
	}
	rep.Duration = tl.Now()
	return rep
}

// Aggregate summarises a batch of headless matches.
type Aggregate struct {
	Matches    int
	Deliveries int
	Hits       int
	TotalRuns  int
	Best       int
	Mean       float64
	NewHighs   int
	ByTier     map[Tier]int
}

// HitRate is the share of deliveries that were hit.
func (a Aggregate) HitRate() float64 {
	if a.Deliveries == 0 {
		return 0
	}
	return float64(a.Hits) / float64(a.Deliveries)
}

// Summarize folds match reports into an Aggregate.
func Summarize(reports []MatchReport) Aggregate {
	agg := Aggregate{Matches: len(reports), ByTier: make(map[Tier]int)}
	for _, r := range reports {
		agg.TotalRuns += r.Summary.FinalScore
		agg.Best = max(agg.Best, r.Summary.FinalScore)
		if r.Summary.IsNewHighScore {
			agg.NewHighs++
		}
		for _, d := range r.Deliveries {
			agg.Deliveries++
			if d.Outcome == OutcomeHit {
				agg.Hits++
			}
			agg.ByTier[d.Tier]++
		}
	}
	if agg.Matches > 0 {
		agg.Mean = float64(agg.TotalRuns) / float64(agg.Matches)
	}
	return agg
}
