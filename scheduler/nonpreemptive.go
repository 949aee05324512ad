package scheduler

import "github.com/cookiefied/processscheduler/job"

// shortestJobFirst picks the arrived job with the least service time at
// every completion. Ties go to the earlier arrival, then submission order.
func shortestJobFirst(r *run) error {
	return runToCompletion(r, shorter)
}

// priorityNonPreemptive picks the arrived job with the lowest priority value
// at every completion.
func priorityNonPreemptive(r *run) error {
	return runToCompletion(r, higherPriority)
}

// runToCompletion is the shared loop of the non-preemptive selectors: choose
// the best arrived job by less, run it to the end, repeat. When nothing has
// arrived, time jumps to the next arrival as one idle interval.
func runToCompletion(r *run, less func(a, b *job.State) bool) error {
	ready := newReadyQueue(less)
	incoming := &arrivals{pending: r.byArrival}

	now := 0
	for finished := 0; finished < len(r.states); {
		incoming.admit(now, ready.PushState)
		if ready.Len() == 0 {
			next, ok := incoming.nextTime()
			if !ok {
				return r.unreachable(now)
			}
			r.tl.idleUntil(next)
			now = next
			continue
		}

		s := ready.PopState()
		ran := s.ExecutesFor(now, s.Remaining)
		r.tl.run(s.Job.ID, now, now+ran)
		now += ran
		finished++
	}
	return nil
}
