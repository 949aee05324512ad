package scheduler

import "github.com/cookiefied/processscheduler/job"

// Selection orders. Each falls back to arrival time and then to submission
// order, so no two distinct states ever compare equal.

func earlier(a, b *job.State) bool {
	if a.Job.Arrival != b.Job.Arrival {
		return a.Job.Arrival < b.Job.Arrival
	}
	return a.Seq < b.Seq
}

func shorter(a, b *job.State) bool {
	if a.Remaining != b.Remaining {
		return a.Remaining < b.Remaining
	}
	return earlier(a, b)
}

func higherPriority(a, b *job.State) bool {
	if pa, pb := a.Job.PriorityValue(), b.Job.PriorityValue(); pa != pb {
		return pa < pb
	}
	return earlier(a, b)
}
