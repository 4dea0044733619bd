package sim

import (
	"math/rand"
	"testing"
	"time"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestTimelineOrder(t *testing.T) {
	tl := NewTimeline()
	var got []string
	tl.After(30*time.Millisecond, func() { got = append(got, "c") })
	tl.After(10*time.Millisecond, func() { got = append(got, "a") })
	tl.After(10*time.Millisecond, func() { got = append(got, "b") })

	tl.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 20ms got %v", got)
	}
	if tl.Now() != 20*time.Millisecond {
		t.Errorf("Now() = %v", tl.Now())
	}

	tl.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("after 30ms got %v", got)
	}
}

func TestTimelineNowInsideCallback(t *testing.T) {
	tl := NewTimeline()
	var seen time.Duration
	tl.After(15*time.Millisecond, func() { seen = tl.Now() })
	tl.Advance(time.Second)
	if seen != 15*time.Millisecond {
		t.Errorf("callback saw Now() = %v", seen)
	}
}

func TestTimelineStop(t *testing.T) {
	tl := NewTimeline()
	fired := false
	timer := tl.After(time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
	tl.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if tl.Pending() != 0 {
		t.Errorf("Pending() = %d", tl.Pending())
	}

	ran := tl.After(0, func() {})
	tl.Advance(0)
	if ran.Stop() {
		t.Error("Stop after firing should report false")
	}
}

func TestTimelineChainedCallbacks(t *testing.T) {
	tl := NewTimeline()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			tl.After(10*time.Millisecond, tick)
		}
	}
	tl.After(10*time.Millisecond, tick)

	tl.Advance(45 * time.Millisecond)
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
	next, ok := tl.NextAt()
	if !ok || next != 50*time.Millisecond {
		t.Errorf("NextAt() = %v, %v", next, ok)
	}
	tl.AdvanceTo(next)
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	if _, ok := tl.NextAt(); ok {
		t.Error("nothing should be pending")
	}
}

func TestTimelineNeverMovesBackwards(t *testing.T) {
	tl := NewTimeline()
	tl.Advance(time.Second)
	tl.AdvanceTo(500 * time.Millisecond)
	if tl.Now() != time.Second {
		t.Errorf("Now() = %v", tl.Now())
	}
}
