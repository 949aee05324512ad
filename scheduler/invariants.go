package scheduler

import "fmt"

type jobSpan struct {
	count int
	busy  int
	first int
	last  int
}

// checkResult verifies the timeline and metric invariants every policy must
// satisfy. Any failure is wrapped in ErrInvariantViolation.
func checkResult(res *Result) error {
	if err := checkTimeline(res.Intervals); err != nil {
		return err
	}

	spans := make(map[string]*jobSpan)
	for _, iv := range res.Intervals {
		if iv.Idle {
			continue
		}
		sp, ok := spans[iv.JobID]
		if !ok {
			sp = &jobSpan{first: iv.Start}
			spans[iv.JobID] = sp
		}
		sp.count++
		sp.busy += iv.Duration()
		sp.last = iv.End
	}

	if len(spans) != len(res.Metrics) {
		return fmt.Errorf("%w: %d jobs in timeline, %d metrics", ErrInvariantViolation, len(spans), len(res.Metrics))
	}

	for _, m := range res.Metrics {
		sp, ok := spans[m.JobID]
		if !ok {
			return fmt.Errorf("%w: job %s never ran", ErrInvariantViolation, m.JobID)
		}
		if sp.busy != m.Service {
			return fmt.Errorf("%w: job %s ran %d units, needs %d", ErrInvariantViolation, m.JobID, sp.busy, m.Service)
		}
		if !res.Policy.Preemptive() && sp.count != 1 {
			return fmt.Errorf("%w: job %s split into %d intervals under %s", ErrInvariantViolation, m.JobID, sp.count, res.Policy)
		}
		if sp.first != m.StartTime {
			return fmt.Errorf("%w: job %s start %d, first interval at %d", ErrInvariantViolation, m.JobID, m.StartTime, sp.first)
		}
		if sp.last != m.CompletionTime {
			return fmt.Errorf("%w: job %s completion %d, last interval ends %d", ErrInvariantViolation, m.JobID, m.CompletionTime, sp.last)
		}
		if m.StartTime < m.Arrival {
			return fmt.Errorf("%w: job %s started at %d before arriving at %d", ErrInvariantViolation, m.JobID, m.StartTime, m.Arrival)
		}
		if m.TurnaroundTime != m.CompletionTime-m.Arrival {
			return fmt.Errorf("%w: job %s turnaround %d != %d - %d", ErrInvariantViolation, m.JobID, m.TurnaroundTime, m.CompletionTime, m.Arrival)
		}
		if m.WaitingTime != m.TurnaroundTime-m.Service || m.WaitingTime < 0 {
			return fmt.Errorf("%w: job %s waiting time %d", ErrInvariantViolation, m.JobID, m.WaitingTime)
		}
	}
	return nil
}

// checkTimeline verifies the intervals cover [0, makespan) contiguously, with
// no empty intervals and no two neighbours sharing a label.
func checkTimeline(intervals []Interval) error {
	if len(intervals) == 0 {
		return fmt.Errorf("%w: empty timeline", ErrInvariantViolation)
	}
	if intervals[0].Start != 0 {
		return fmt.Errorf("%w: timeline starts at %d", ErrInvariantViolation, intervals[0].Start)
	}

	total := 0
	for i, iv := range intervals {
		if iv.End <= iv.Start {
			return fmt.Errorf("%w: empty interval %s [%d,%d)", ErrInvariantViolation, iv.Label(), iv.Start, iv.End)
		}
		if i > 0 {
			prev := intervals[i-1]
			if prev.End != iv.Start {
				return fmt.Errorf("%w: gap or overlap between %d and %d", ErrInvariantViolation, prev.End, iv.Start)
			}
			if prev.sameLabel(iv) {
				return fmt.Errorf("%w: adjacent intervals share label %s at %d", ErrInvariantViolation, iv.Label(), iv.Start)
			}
		}
		total += iv.Duration()
	}
	if last := intervals[len(intervals)-1]; total != last.End {
		return fmt.Errorf("%w: intervals sum to %d, makespan %d", ErrInvariantViolation, total, last.End)
	}
	if last := intervals[len(intervals)-1]; last.Idle {
		return fmt.Errorf("%w: timeline ends idle at %d", ErrInvariantViolation, last.End)
	}
	return nil
}
