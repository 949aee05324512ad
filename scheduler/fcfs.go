package scheduler

// fcfs runs jobs strictly in arrival order, ties by submission order. A job
// starts at max(now, arrival); the timeline fills any gap with idle time.
func fcfs(r *run) error {
	now := 0
	for _, s := range r.byArrival {
		start := max(now, s.Job.Arrival)
		ran := s.ExecutesFor(start, s.Remaining)
		r.tl.run(s.Job.ID, start, start+ran)
		now = start + ran
	}
	return nil
}
