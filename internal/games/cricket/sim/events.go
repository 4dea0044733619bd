package sim

import "time"

// Event is something the engine reports to its presentation sink.
type Event interface {
	simEvent()
}

// MatchStartedEvent is published when a match (re)starts.
type MatchStartedEvent struct {
	MatchID string
	State   MatchState
}

func (MatchStartedEvent) simEvent() {}

// DeliveryStartedEvent is published when a ball is released.
type DeliveryStartedEvent struct {
	Delivery Delivery
}

func (DeliveryStartedEvent) simEvent() {}

// BallHittableEvent is published when the bounce completes.
type BallHittableEvent struct {
	DeliveryID string
	At         time.Duration
}

func (BallHittableEvent) simEvent() {}

// SwingEvent is published for every swing made while a delivery is live.
// Accepted is false when the ball was not yet playable; such a swing is a
// miss that does not resolve the delivery.
type SwingEvent struct {
	DeliveryID string
	At         time.Duration
	Position   float64
	Accuracy   float64
	Feedback   Feedback
	Accepted   bool
}

func (SwingEvent) simEvent() {}

// DeliveryResolvedEvent is published once per delivery.
type DeliveryResolvedEvent struct {
	Delivery Delivery
	Outcome  Outcome
	Runs     int
	Accuracy float64
	Tier     Tier
	State    MatchState
}

func (DeliveryResolvedEvent) simEvent() {}

// GameOverEvent is published exactly once per match.
type GameOverEvent struct {
	MatchID string
	Summary Summary
	State   MatchState
}

func (GameOverEvent) simEvent() {}

// Sink receives engine events. Publish is called synchronously from the
// engine and must not block.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Publish calls f(ev).
func (f SinkFunc) Publish(ev Event) { f(ev) }

// MultiSink fans events out in order.
type MultiSink []Sink

// Publish forwards ev to every sink.
func (m MultiSink) Publish(ev Event) {
	for _, s := range m {
		if s != nil {
			s.Publish(ev)
		}
	}
}

type nopSink struct{}

func (nopSink) Publish(Event) {}
