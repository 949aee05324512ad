package scheduler

import "github.com/cookiefied/processscheduler/job"

// roundRobin serves a FIFO ready queue in slices of at most r.quantum.
// Jobs that arrive while a slice runs join the queue ahead of the job whose
// slice just ended.
func roundRobin(r *run) error {
	queue := make([]*job.State, 0, len(r.states))
	enqueue := func(s *job.State) {
		queue = append(queue, s)
	}
	incoming := &arrivals{pending: r.byArrival}

	now := 0
	incoming.admit(now, enqueue)
	for finished := 0; finished < len(r.states); {
		if len(queue) == 0 {
			next, ok := incoming.nextTime()
			if !ok {
				return r.unreachable(now)
			}
			r.tl.idleUntil(next)
			now = next
			incoming.admit(now, enqueue)
			continue
		}

		s := queue[0]
		queue = queue[1:]

		ran := s.ExecutesFor(now, r.sliceFor(s, now, len(queue) == 0, incoming))
		r.tl.run(s.Job.ID, now, now+ran)
		now += ran

		incoming.admit(now, enqueue)
		if s.Done() {
			finished++
		} else {
			queue = append(queue, s)
		}
	}
	return nil
}

// sliceFor is the time s may hold the resource. A job alone in the queue
// would get slice after slice until one ends at or past the next arrival, so
// those slices are granted at once.
func (r *run) sliceFor(s *job.State, now int, alone bool, incoming *arrivals) int {
	if !alone {
		return r.quantum
	}
	next, ok := incoming.nextTime()
	if !ok {
		return s.Remaining
	}
	wait := next - now
	if wait <= r.quantum {
		return r.quantum
	}
	slices := (wait-1)/r.quantum + 1
	if slices > s.Remaining/r.quantum {
		return s.Remaining
	}
	return slices * r.quantum
}
