package sim

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tapcricket/internal/config"
)

func approxDur(a, b time.Duration) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= time.Microsecond
}

func approxF(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func testTrajectory(t *testing.T, l Label) Trajectory {
	t.Helper()
	a, ok := ArchetypeByLabel(l)
	if !ok {
		t.Fatalf("archetype %s missing", l)
	}
	return NewTrajectory(config.DefaultCricketConfig(), a, 400, 1)
}

func TestCatalog(t *testing.T) {
	tests := []struct {
		label      Label
		speed      int
		difficulty int
		runs       int
	}{
		{LabelFast, 350, 3, 6},
		{LabelMedium, 250, 2, 4},
		{LabelSlow, 150, 1, 2},
	}

	if got := len(Catalog()); got != len(tests) {
		t.Fatalf("catalog size = %d, want %d", got, len(tests))
	}
	for _, tt := range tests {
		a, ok := ArchetypeByLabel(tt.label)
		if !ok {
			t.Fatalf("%s not in catalog", tt.label)
		}
		if a.Speed != tt.speed || a.Difficulty != tt.difficulty || a.RunValue != tt.runs {
			t.Errorf("%s = %+v", tt.label, a)
		}
	}

	// Catalog returns a copy
	c := Catalog()
	c[0].RunValue = 99
	if Catalog()[0].RunValue == 99 {
		t.Error("Catalog() exposes internal table")
	}
}

func TestRandomSelectorCoversCatalog(t *testing.T) {
	sel := NewRandomSelector(newRand(7))
	seen := map[Label]int{}
	for i := 0; i < 300; i++ {
		seen[sel.Select().Label]++
	}
	for _, a := range Catalog() {
		if seen[a.Label] == 0 {
			t.Errorf("%s never selected", a.Label)
		}
	}
}

func TestSequenceSelectorCycles(t *testing.T) {
	fast, _ := ArchetypeByLabel(LabelFast)
	slow, _ := ArchetypeByLabel(LabelSlow)
	sel := NewSequenceSelector(fast, slow)

	want := []Label{LabelFast, LabelSlow, LabelFast, LabelSlow}
	for i, w := range want {
		if got := sel.Select().Label; got != w {
			t.Errorf("pick %d = %s, want %s", i, got, w)
		}
	}
}

func TestTrajectoryApproachBySpeed(t *testing.T) {
	tests := []struct {
		label    Label
		approach time.Duration
	}{
		{LabelFast, 595 * time.Millisecond},
		{LabelMedium, 665 * time.Millisecond},
		{LabelSlow, 735 * time.Millisecond},
	}
	for _, tt := range tests {
		tr := testTrajectory(t, tt.label)
		if !approxDur(tr.Approach, tt.approach) {
			t.Errorf("%s approach = %v, want %v", tt.label, tr.Approach, tt.approach)
		}
	}

	fast, medium, slow := testTrajectory(t, LabelFast), testTrajectory(t, LabelMedium), testTrajectory(t, LabelSlow)
	if !(fast.Total() < medium.Total() && medium.Total() < slow.Total()) {
		t.Errorf("faster deliveries should arrive sooner: %v %v %v", fast.Total(), medium.Total(), slow.Total())
	}
}

func TestTrajectoryPaceAndFloor(t *testing.T) {
	cfg := config.DefaultCricketConfig()
	fast, _ := ArchetypeByLabel(LabelFast)

	base := NewTrajectory(cfg, fast, 400, 1)
	quick := NewTrajectory(cfg, fast, 400, 1.5)
	if quick.Approach >= base.Approach {
		t.Errorf("pace 1.5 approach %v should be shorter than %v", quick.Approach, base.Approach)
	}

	floored := NewTrajectory(cfg, fast, 400, 100)
	want := millis(float64(cfg.Bowling.MinFlightMs) * cfg.Bowling.ApproachShare)
	if !approxDur(floored.Approach, want) {
		t.Errorf("floored approach = %v, want %v", floored.Approach, want)
	}
}

func TestTrajectoryPhases(t *testing.T) {
	tr := testTrajectory(t, LabelMedium)

	tests := []struct {
		at   time.Duration
		want Phase
	}{
		{0, PhaseApproach},
		{tr.Approach - time.Millisecond, PhaseApproach},
		{tr.Approach, PhaseBounce},
		{tr.HittableFrom() - time.Millisecond, PhaseBounce},
		{tr.HittableFrom(), PhaseContinuation},
		{tr.Total() - time.Millisecond, PhaseContinuation},
		{tr.Total(), PhaseGone},
		{tr.Total() + time.Second, PhaseGone},
	}
	for _, tt := range tests {
		if got := tr.Phase(tt.at); got != tt.want {
			t.Errorf("Phase(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestTrajectoryHittableWindow(t *testing.T) {
	tr := testTrajectory(t, LabelFast)

	if tr.Hittable(0) || tr.Hittable(tr.Approach) || tr.Hittable(tr.HittableFrom()-time.Nanosecond) {
		t.Error("ball must not be hittable before the bounce completes")
	}
	if !tr.Hittable(tr.HittableFrom()) || !tr.Hittable(tr.IdealContactTime()) {
		t.Error("ball should be hittable after the bounce")
	}
	if tr.Hittable(tr.Total()) {
		t.Error("ball must not be hittable at the terminus")
	}
}

func TestTrajectoryLandmarks(t *testing.T) {
	tr := testTrajectory(t, LabelSlow)
	// 400 + (720-400)*0.65
	const bounceY = 608.0

	tests := []struct {
		name string
		at   time.Duration
		want float64
	}{
		{"release", 0, 400},
		{"before release", -time.Second, 400},
		{"pitching", tr.Approach, bounceY},
		{"bounce apex", tr.Approach + tr.Bounce/2, bounceY - 30},
		{"bounce done", tr.HittableFrom(), bounceY},
		{"pass line", tr.PassAt(), 700},
		{"terminus", tr.Total(), 950},
		{"after terminus", tr.Total() + time.Minute, 950},
	}
	for _, tt := range tests {
		if got := tr.Position(tt.at); !approxF(got, tt.want, 0.01) {
			t.Errorf("%s: Position(%v) = %.3f, want %.3f", tt.name, tt.at, got, tt.want)
		}
	}
}

func TestTrajectoryMovesTowardsBatterAfterBounce(t *testing.T) {
	tr := testTrajectory(t, LabelFast)

	prev := tr.Position(tr.HittableFrom())
	for at := tr.HittableFrom(); at <= tr.Total(); at += 5 * time.Millisecond {
		p := tr.Position(at)
		if p < prev-1e-9 {
			t.Fatalf("position went backwards at %v: %.3f < %.3f", at, p, prev)
		}
		prev = p
	}
}

func TestIdealContactTime(t *testing.T) {
	for _, a := range Catalog() {
		tr := NewTrajectory(config.DefaultCricketConfig(), a, 400, 1)
		at := tr.IdealContactTime()
		if !tr.Hittable(at) {
			t.Errorf("%s: ideal contact %v outside hittable window", a.Label, at)
		}
		if got := tr.Position(at); !approxF(got, tr.ContactY, 0.01) {
			t.Errorf("%s: position at ideal contact = %.3f, want %.1f", a.Label, got, tr.ContactY)
		}
	}
}

func TestTimeAtOffPath(t *testing.T) {
	tr := testTrajectory(t, LabelMedium)
	if _, ok := tr.TimeAt(100); ok {
		t.Error("TimeAt before the bounce point should not resolve")
	}
	if _, ok := tr.TimeAt(2000); ok {
		t.Error("TimeAt beyond the terminus should not resolve")
	}
}

func TestDeliveryTimestamps(t *testing.T) {
	slow, _ := ArchetypeByLabel(LabelSlow)
	tr := NewTrajectory(config.DefaultCricketConfig(), slow, 400, 1)
	now := 3 * time.Second
	d := newDelivery("id", 1, slow, tr, now)

	if d.SpawnTime != now || d.BounceTime != now+tr.BounceAt() {
		t.Errorf("spawn/bounce = %v/%v", d.SpawnTime, d.BounceTime)
	}
	if d.HittableWindowStart != now+tr.HittableFrom() || d.HittableWindowEnd != now+tr.Total() {
		t.Errorf("window = [%v, %v)", d.HittableWindowStart, d.HittableWindowEnd)
	}
	if d.Hittable(d.HittableWindowStart-1) || !d.Hittable(d.HittableWindowStart) || d.Hittable(d.HittableWindowEnd) {
		t.Error("Delivery.Hittable disagrees with its window")
	}
	if got := d.Position(d.IdealSwingTime()); !approxF(got, 660, 0.01) {
		t.Errorf("position at ideal swing = %.3f", got)
	}
}
