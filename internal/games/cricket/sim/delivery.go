// Package sim is the deterministic core of TapCricket: delivery selection,
// the ball's path as a pure function of time, timing judgement, run scoring
// and the match state machine. It knows nothing about terminals; time comes
// from a Scheduler and everything observable leaves through a Sink.
package sim

import (
	"math/rand"
	"time"
)

// Label names a delivery archetype.
type Label string

const (
	LabelFast   Label = "Fast"
	LabelMedium Label = "Medium"
	LabelSlow   Label = "Slow"
)

// Archetype is an immutable delivery kind from the fixed catalog.
type Archetype struct {
	Label      Label
	Speed      int // Higher is quicker through the air
	Difficulty int // 1..3
	RunValue   int // Runs for a perfectly timed shot
}

var catalog = [...]Archetype{
	{Label: LabelFast, Speed: 350, Difficulty: 3, RunValue: 6},
	{Label: LabelMedium, Speed: 250, Difficulty: 2, RunValue: 4},
	{Label: LabelSlow, Speed: 150, Difficulty: 1, RunValue: 2},
}

// Catalog returns a copy of the delivery catalog.
func Catalog() []Archetype {
	out := make([]Archetype, len(catalog))
	copy(out, catalog[:])
	return out
}

// ArchetypeByLabel looks up a catalog entry.
func ArchetypeByLabel(l Label) (Archetype, bool) {
	for _, a := range catalog {
		if a.Label == l {
			return a, true
		}
	}
	return Archetype{}, false
}

// Selector picks the next delivery archetype.
type Selector interface {
	Select() Archetype
}

// RandomSelector picks uniformly from the catalog.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector creates a selector drawing from rng.
func NewRandomSelector(rng *rand.Rand) *RandomSelector {
	return &RandomSelector{rng: rng}
}

// Select returns a uniformly random catalog entry.
func (s *RandomSelector) Select() Archetype {
	return catalog[s.rng.Intn(len(catalog))]
}

// SequenceSelector replays a fixed list of archetypes, cycling when exhausted.
// Useful for scripted matches and replays.
type SequenceSelector struct {
	seq  []Archetype
	next int
}

// NewSequenceSelector creates a selector over seq. An empty seq falls back
// to the full catalog order.
func NewSequenceSelector(seq ...Archetype) *SequenceSelector {
	if len(seq) == 0 {
		seq = Catalog()
	}
	return &SequenceSelector{seq: seq}
}

// Select returns the next archetype in sequence.
func (s *SequenceSelector) Select() Archetype {
	a := s.seq[s.next%len(s.seq)]
	s.next++
	return a
}

// Delivery is one ball from spawn to resolution. Timestamps are on the
// scheduler's clock.
type Delivery struct {
	ID         string
	Seq        int // 1-based number within the match
	Archetype  Archetype
	Trajectory Trajectory

	SpawnTime           time.Duration
	BounceTime          time.Duration
	HittableWindowStart time.Duration
	HittableWindowEnd   time.Duration
}

func newDelivery(id string, seq int, a Archetype, tr Trajectory, now time.Duration) Delivery {
	return Delivery{
		ID:                  id,
		Seq:                 seq,
		Archetype:           a,
		Trajectory:          tr,
		SpawnTime:           now,
		BounceTime:          now + tr.BounceAt(),
		HittableWindowStart: now + tr.HittableFrom(),
		HittableWindowEnd:   now + tr.Total(),
	}
}

// Position returns the ball's position at scheduler time at.
func (d Delivery) Position(at time.Duration) float64 {
	return d.Trajectory.Position(at - d.SpawnTime)
}

// Hittable reports whether a swing at time at can connect.
func (d Delivery) Hittable(at time.Duration) bool {
	return at >= d.HittableWindowStart && at < d.HittableWindowEnd
}

// IdealSwingTime is the moment the ball crosses the contact line.
func (d Delivery) IdealSwingTime() time.Duration {
	return d.SpawnTime + d.Trajectory.IdealContactTime()
}
