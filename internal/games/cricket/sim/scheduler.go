package sim

import (
	"container/heap"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Scheduler provides the engine's clock and fire-once delayed callbacks.
// Callbacks run on the caller's goroutine, one at a time.
type Scheduler interface {
	Now() time.Duration
	After(d time.Duration, fn func()) Timer
}

// Timeline is a deterministic Scheduler driven by Advance. The host loop
// advances it by each frame's duration; tests can jump to any instant.
type Timeline struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewTimeline creates a timeline at time zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns the current simulated time.
func (tl *Timeline) Now() time.Duration {
	return tl.now
}

// After schedules fn to run once the timeline reaches Now()+d.
// Negative delays are treated as zero.
func (tl *Timeline) After(d time.Duration, fn func()) Timer {
	tl.seq++
	t := &timelineTimer{at: tl.now + max(d, 0), seq: tl.seq, fn: fn}
	heap.Push(&tl.queue, t)
	return t
}

// Advance moves time forward by d, running every callback that falls due in
// order of due time, then scheduling order. Callbacks observe Now() equal to
// their due time and may schedule further callbacks, which also run if due.
func (tl *Timeline) Advance(d time.Duration) {
	tl.AdvanceTo(tl.now + d)
}

// AdvanceTo moves time forward to target. Moving backwards is a no-op.
func (tl *Timeline) AdvanceTo(target time.Duration) {
	for tl.queue.Len() > 0 {
		next := tl.queue[0]
		if next.at > target {
			break
		}
		heap.Pop(&tl.queue)
		if next.done {
			continue
		}
		next.done = true
		if next.at > tl.now {
			tl.now = next.at
		}
		next.fn()
	}
	if target > tl.now {
		tl.now = target
	}
}

// Pending returns the number of callbacks that have not run or been stopped.
func (tl *Timeline) Pending() int {
	n := 0
	for _, t := range tl.queue {
		if !t.done {
			n++
		}
	}
	return n
}

// NextAt returns the due time of the earliest pending callback.
func (tl *Timeline) NextAt() (time.Duration, bool) {
	for tl.queue.Len() > 0 && tl.queue[0].done {
		heap.Pop(&tl.queue)
	}
	if tl.queue.Len() == 0 {
		return 0, false
	}
	return tl.queue[0].at, true
}

type timelineTimer struct {
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

func (t *timelineTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

type timerQueue []*timelineTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timelineTimer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
