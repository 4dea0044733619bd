package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tapcricket/internal/config"
)

// Phase is the section of the ball's path at a given moment.
type Phase int

const (
	PhaseApproach     Phase = iota // Release to pitching point
	PhaseBounce                    // Kick up off the pitch and back down
	PhaseContinuation              // Past the batter towards the terminus
	PhaseGone                      // Reached the terminus
)

func (p Phase) String() string {
	switch p {
	case PhaseApproach:
		return "approach"
	case PhaseBounce:
		return "bounce"
	case PhaseContinuation:
		return "continuation"
	default:
		return "gone"
	}
}

// Trajectory is the ball's vertical path as a pure function of the time
// elapsed since release.
type Trajectory struct {
	SpawnY       float64
	BounceY      float64
	BounceHeight float64
	ContactY     float64
	PassY        float64
	TerminusY    float64

	Approach time.Duration
	Bounce   time.Duration
	Drive    time.Duration
	Runoff   time.Duration
}

// NewTrajectory builds the path for an archetype released at spawnY.
// Flight time shrinks with speed; pace (>= 1) shortens it further.
func NewTrajectory(cfg config.CricketConfig, a Archetype, spawnY, pace float64) Trajectory {
	flight := float64(cfg.Bowling.BaseDurationMs - a.Speed + cfg.Bowling.DurationOffsetMs)
	if pace > 0 {
		flight /= pace
	}
	flight = math.Max(flight, float64(cfg.Bowling.MinFlightMs))

	return Trajectory{
		SpawnY:       spawnY,
		BounceY:      spawnY + (cfg.Pitch.CreaseY-spawnY)*cfg.Pitch.BounceFraction,
		BounceHeight: cfg.Pitch.BounceHeight,
		ContactY:     cfg.Pitch.ContactY,
		PassY:        cfg.Pitch.PassY,
		TerminusY:    cfg.Pitch.TerminusY,
		Approach:     millis(flight * cfg.Bowling.ApproachShare),
		Bounce:       millis(float64(cfg.Bowling.BounceMs)),
		Drive:        millis(float64(cfg.Bowling.DriveMs)),
		Runoff:       millis(float64(cfg.Bowling.RunoffMs)),
	}
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// BounceAt is when the ball pitches.
func (t Trajectory) BounceAt() time.Duration { return t.Approach }

// HittableFrom is when the bounce completes and the ball becomes playable.
func (t Trajectory) HittableFrom() time.Duration { return t.Approach + t.Bounce }

// PassAt is when the ball crosses the pass line.
func (t Trajectory) PassAt() time.Duration { return t.HittableFrom() + t.Drive }

// Total is when the ball reaches the terminus.
func (t Trajectory) Total() time.Duration { return t.PassAt() + t.Runoff }

// Phase returns the path section at elapsed.
func (t Trajectory) Phase(elapsed time.Duration) Phase {
	switch {
	case elapsed < t.Approach:
		return PhaseApproach
	case elapsed < t.HittableFrom():
		return PhaseBounce
	case elapsed < t.Total():
		return PhaseContinuation
	default:
		return PhaseGone
	}
}

// Hittable reports whether the ball is playable at elapsed.
func (t Trajectory) Hittable(elapsed time.Duration) bool {
	return elapsed >= t.HittableFrom() && elapsed < t.Total()
}

// Position returns the ball's position at elapsed. Before release it sits at
// the spawn point, after the terminus it stays there.
func (t Trajectory) Position(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return t.SpawnY
	}
	switch t.Phase(elapsed) {
	case PhaseApproach:
		u := fraction(elapsed, t.Approach)
		return lerp(t.SpawnY, t.BounceY, easeOutQuad(u))
	case PhaseBounce:
		u := fraction(elapsed-t.Approach, t.Bounce)
		return t.BounceY - t.BounceHeight*4*u*(1-u)
	case PhaseContinuation:
		since := elapsed - t.HittableFrom()
		if since < t.Drive {
			return lerp(t.BounceY, t.PassY, easeInQuad(fraction(since, t.Drive)))
		}
		return lerp(t.PassY, t.TerminusY, easeInQuad(fraction(since-t.Drive, t.Runoff)))
	default:
		return t.TerminusY
	}
}

// TimeAt returns the elapsed time at which the ball, after bouncing, reaches
// position y. ok is false when y is not on the continuation path.
func (t Trajectory) TimeAt(y float64) (time.Duration, bool) {
	inv := func(from, to float64, span time.Duration) (time.Duration, bool) {
		if to == from || (y-from)*(to-y) < 0 {
			return 0, false
		}
		f := (y - from) / (to - from)
		return time.Duration(math.Sqrt(f) * float64(span)), true
	}
	if d, ok := inv(t.BounceY, t.PassY, t.Drive); ok {
		return t.HittableFrom() + d, true
	}
	if d, ok := inv(t.PassY, t.TerminusY, t.Runoff); ok {
		return t.PassAt() + d, true
	}
	return 0, false
}

// IdealContactTime is the elapsed time at which the ball crosses the contact
// line. If the contact line lies before the bounce point the ball is closest
// to it as soon as it becomes hittable.
func (t Trajectory) IdealContactTime() time.Duration {
	if d, ok := t.TimeAt(t.ContactY); ok {
		return d
	}
	return t.HittableFrom()
}

func fraction(d, span time.Duration) float64 {
	if span <= 0 {
		return 1
	}
	return math.Min(1, float64(d)/float64(span))
}

func lerp(a, b, u float64) float64 { return a + (b-a)*u }

func easeOutQuad(u float64) float64 { return u * (2 - u) }

func easeInQuad(u float64) float64 { return u * u }
