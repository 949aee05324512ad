package scheduler

// priorityPreemptive always runs the arrived, unfinished job with the lowest
// priority value. Instead of stepping one unit at a time, the head of the
// ready queue runs until it finishes or the next job arrives, whichever comes
// first; every arrival is a point where the selection is made again.
//
// The queue key (priority, arrival, submission) never changes while a job
// waits or runs, so the running job stays at the head until something with a
// strictly better key is admitted.
func priorityPreemptive(r *run) error {
	ready := newReadyQueue(higherPriority)
	incoming := &arrivals{pending: r.byArrival}

	now := 0
	for finished := 0; finished < len(r.states); {
		incoming.admit(now, ready.PushState)
		s := ready.Peek()
		if s == nil {
			next, ok := incoming.nextTime()
			if !ok {
				return r.unreachable(now)
			}
			r.tl.idleUntil(next)
			now = next
			continue
		}

		until := now + s.Remaining
		if next, ok := incoming.nextTime(); ok && next < until {
			until = next
		}
		ran := s.ExecutesFor(now, until-now)
		r.tl.run(s.Job.ID, now, now+ran)
		now += ran
		if s.Done() {
			ready.PopState()
			finished++
		}
	}
	return nil
}
