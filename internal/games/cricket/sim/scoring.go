package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tapcricket/internal/config"
)

// Tier is a band of accuracy that maps to a share of the delivery's runs.
type Tier int

const (
	TierMiss Tier = iota
	TierOk
	TierGood
	TierPerfect
)

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierGood:
		return "good"
	case TierOk:
		return "ok"
	default:
		return "miss"
	}
}

// ScoringPolicy maps (run value, accuracy) to runs.
type ScoringPolicy struct {
	PerfectAbove float64
	GoodAbove    float64
	HitAbove     float64
	GoodFactor   float64
	OkFactor     float64
}

// NewScoringPolicy creates a policy. hitThreshold is the judge's miss line.
func NewScoringPolicy(cfg config.ScoringConfig, hitThreshold float64) ScoringPolicy {
	return ScoringPolicy{
		PerfectAbove: cfg.PerfectAbove,
		GoodAbove:    cfg.GoodAbove,
		HitAbove:     hitThreshold,
		GoodFactor:   cfg.GoodFactor,
		OkFactor:     cfg.OkFactor,
	}
}

// DefaultScoringPolicy uses the 0.8 / 0.6 / 0.1 tiers.
func DefaultScoringPolicy() ScoringPolicy {
	cfg := config.DefaultCricketConfig()
	return NewScoringPolicy(cfg.Scoring, cfg.Judge.HitThreshold)
}

// Tier classifies an accuracy.
func (p ScoringPolicy) Tier(accuracy float64) Tier {
	switch {
	case accuracy > p.PerfectAbove:
		return TierPerfect
	case accuracy > p.GoodAbove:
		return TierGood
	case accuracy > p.HitAbove:
		return TierOk
	default:
		return TierMiss
	}
}

// Runs returns the runs scored for a swing of the given accuracy.
func (p ScoringPolicy) Runs(runValue int, accuracy float64) int {
	switch p.Tier(accuracy) {
	case TierPerfect:
		return runValue
	case TierGood:
		return int(math.Floor(float64(runValue) * p.GoodFactor))
	case TierOk:
		return int(math.Floor(float64(runValue) * p.OkFactor))
	default:
		return 0
	}
}

// ScoreRuns scores with the default policy.
func ScoreRuns(runValue int, accuracy float64) int {
	return DefaultScoringPolicy().Runs(runValue, accuracy)
}

// RunsMessage is the caption shown after a connected shot.
func RunsMessage(runs int, tier Tier) string {
	switch {
	case runs == 0:
		return "NO RUNS!"
	case tier == TierPerfect:
		return fmt.Sprintf("%d RUNS! PERFECT!", runs)
	case tier == TierGood:
		return fmt.Sprintf("%d RUNS! GOOD!", runs)
	default:
		return fmt.Sprintf("%d RUNS", runs)
	}
}
