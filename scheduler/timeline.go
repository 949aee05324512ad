package scheduler

import "fmt"

// timeline records execution intervals in time order and merges a new
// interval into the previous one when both carry the same label.
type timeline struct {
	intervals []Interval
	now       int
}

func (t *timeline) append(iv Interval) {
	if iv.End <= iv.Start {
		return
	}
	if iv.Start != t.now {
		panic(fmt.Sprintf("timeline: interval [%d,%d) does not start at %d", iv.Start, iv.End, t.now))
	}
	if n := len(t.intervals); n > 0 && t.intervals[n-1].sameLabel(iv) {
		t.intervals[n-1].End = iv.End
	} else {
		t.intervals = append(t.intervals, iv)
	}
	t.now = iv.End
}

// idleUntil marks [now, end) idle. It is a no-op when end is not in the future.
func (t *timeline) idleUntil(end int) {
	if end <= t.now {
		return
	}
	t.append(Interval{Idle: true, Start: t.now, End: end})
}

// run records id on [start, end), filling any gap since the last interval
// with idle time.
func (t *timeline) run(id string, start, end int) {
	t.idleUntil(start)
	t.append(Interval{JobID: id, Start: start, End: end})
}
