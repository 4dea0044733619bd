package sim

import (
	"math"

	"github.com/vovakirdan/tapcricket/internal/config"
)

// Judge turns the distance between ball and contact line into accuracy.
type Judge struct {
	BaseWindow   float64
	WindowScale  float64
	HitThreshold float64
}

// NewJudge creates a judge from config.
func NewJudge(cfg config.JudgeConfig) Judge {
	return Judge{
		BaseWindow:   cfg.BaseWindow,
		WindowScale:  cfg.WindowScale,
		HitThreshold: cfg.HitThreshold,
	}
}

// DefaultJudge is the forgiving tuning: maxWindow = 80 + difficulty*20.
func DefaultJudge() Judge {
	return NewJudge(config.DefaultCricketConfig().Judge)
}

// MaxWindow is the distance at which accuracy reaches zero. Never below 1.
func (j Judge) MaxWindow(difficulty int) float64 {
	return math.Max(1, j.BaseWindow+float64(difficulty)*j.WindowScale)
}

// Accuracy returns a score in [0,1]; 1 means the ball was exactly on the
// contact line. It is symmetric around ideal.
func (j Judge) Accuracy(ball, ideal float64, difficulty int) float64 {
	distance := math.Abs(ball - ideal)
	return math.Max(0, 1-distance/j.MaxWindow(difficulty))
}

// Connects reports whether accuracy is good enough to count as a hit.
func (j Judge) Connects(accuracy float64) bool {
	return accuracy > j.HitThreshold
}

// JudgeTiming scores a swing with the default judge.
func JudgeTiming(ball, ideal float64, difficulty int) float64 {
	return DefaultJudge().Accuracy(ball, ideal, difficulty)
}

// Feedback describes where the ball was relative to the batting zone when
// the player swung.
type Feedback int

const (
	FeedbackWayTooEarly Feedback = iota
	FeedbackTooEarly
	FeedbackEarly
	FeedbackPerfect
	FeedbackGood
	FeedbackOK
	FeedbackLate
	FeedbackTooLate
	FeedbackWayTooLate
)

func (f Feedback) String() string {
	switch f {
	case FeedbackWayTooEarly:
		return "WAY TOO EARLY"
	case FeedbackTooEarly:
		return "TOO EARLY"
	case FeedbackEarly:
		return "EARLY"
	case FeedbackPerfect:
		return "PERFECT TIMING"
	case FeedbackGood:
		return "GOOD TIMING"
	case FeedbackOK:
		return "OK TIMING"
	case FeedbackLate:
		return "LATE"
	case FeedbackTooLate:
		return "TOO LATE"
	default:
		return "WAY TOO LATE"
	}
}

// TimingFeedback classifies a swing against the batting zone
// [ideal-before, ideal+after]. Positions grow towards the batter.
func TimingFeedback(ball, ideal, before, after float64) Feedback {
	zoneStart := ideal - before
	zoneEnd := ideal + after

	switch {
	case ball < zoneStart:
		return graded(zoneStart-ball, FeedbackWayTooEarly, FeedbackTooEarly, FeedbackEarly)
	case ball > zoneEnd:
		return graded(ball-zoneEnd, FeedbackWayTooLate, FeedbackTooLate, FeedbackLate)
	}

	centre := math.Abs(ball - ideal)
	switch {
	case centre < 10:
		return FeedbackPerfect
	case centre < 25:
		return FeedbackGood
	default:
		return FeedbackOK
	}
}

func graded(off float64, far, mid, near Feedback) Feedback {
	switch {
	case off > 100:
		return far
	case off > 50:
		return mid
	default:
		return near
	}
}
