package sim

// MatchState is the score line of one match. Transitions return a new value
// and never mutate the receiver.
type MatchState struct {
	Score             int
	AttemptsRemaining int
	IsOver            bool
	HighScore         int
}

// NewMatchState starts a match with the given number of attempts.
func NewMatchState(attempts, highScore int) MatchState {
	return MatchState{
		AttemptsRemaining: max(attempts, 0),
		IsOver:            attempts <= 0,
		HighScore:         max(highScore, 0),
	}
}

// Resolve records the end of one delivery: runs are added and exactly one
// attempt is consumed. A finished match is returned unchanged.
func (s MatchState) Resolve(runs int) MatchState {
	if s.IsOver {
		return s
	}
	s.Score += max(runs, 0)
	s.AttemptsRemaining--
	if s.AttemptsRemaining <= 0 {
		s.AttemptsRemaining = 0
		s.IsOver = true
	}
	return s
}

// Summary is the terminal report of a match.
type Summary struct {
	FinalScore     int
	HighScore      int
	IsNewHighScore bool
}

// Finalize compares the score with the persisted best. The returned state
// carries the new high score.
func (s MatchState) Finalize(storedHigh int) (MatchState, Summary) {
	storedHigh = max(storedHigh, 0)
	sum := Summary{
		FinalScore:     s.Score,
		HighScore:      storedHigh,
		IsNewHighScore: s.Score > storedHigh,
	}
	if sum.IsNewHighScore {
		sum.HighScore = s.Score
	}
	s.HighScore = sum.HighScore
	return s, sum
}

// EngineState is the round state machine position.
type EngineState int

const (
	StateIdle     EngineState = iota // Waiting to bowl
	StateInFlight                    // A delivery is live
	StateResolved                    // Showing the result before the next ball
	StateGameOver                    // Terminal
)

func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateResolved:
		return "resolved"
	default:
		return "game-over"
	}
}

// Outcome is how a delivery was resolved.
type Outcome int

const (
	OutcomeHit         Outcome = iota // Swing connected
	OutcomeMissedSwing                // Swing inside the window but too far off
	OutcomeUnplayed                   // Ball reached the terminus untouched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMissedSwing:
		return "missed-swing"
	default:
		return "unplayed"
	}
}

// CostsWicket reports whether the outcome is shown as a lost wicket.
func (o Outcome) CostsWicket() bool {
	return o != OutcomeHit
}
