package scheduler

import "github.com/cookiefied/processscheduler/job"

// shortestRemainingTimeFirst gives the resource to the eligible job with the
// least remaining time; the running job keeps it unless another job has
// strictly less. Between two arrivals only the running job's remaining time
// drops, so it runs until it finishes or the next job arrives. Gaps with no
// eligible job are recorded as a single idle interval.
func shortestRemainingTimeFirst(r *run) error {
	var current *job.State

	now := 0
	for finished := 0; finished < len(r.states); {
		var best *job.State
		for _, s := range r.states {
			if s.Done() || !s.ArrivedBy(now) {
				continue
			}
			if best == nil || shorter(s, best) {
				best = s
			}
		}

		next, more := nextArrivalAfter(r.states, now)
		if best == nil {
			if !more {
				return r.unreachable(now)
			}
			r.tl.idleUntil(next)
			now = next
			current = nil
			continue
		}

		if current != nil && !current.Done() && current.Remaining == best.Remaining {
			best = current
		}

		until := now + best.Remaining
		if more && next < until {
			until = next
		}
		ran := best.ExecutesFor(now, until-now)
		r.tl.run(best.Job.ID, now, now+ran)
		now += ran
		if best.Done() {
			finished++
		}
		current = best
	}
	return nil
}

// nextArrivalAfter returns the earliest arrival later than now among
// unfinished states.
func nextArrivalAfter(states []*job.State, now int) (int, bool) {
	next, found := 0, false
	for _, s := range states {
		if s.Done() || s.Job.Arrival <= now {
			continue
		}
		if !found || s.Job.Arrival < next {
			next, found = s.Job.Arrival, true
		}
	}
	return next, found
}
