package scheduler

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/cookiefied/processscheduler/job"
)

// algorithm fills r.tl and the job states for one policy.
type algorithm func(r *run) error

var algorithms = map[Policy]algorithm{
	FCFS:       fcfs,
	SJF:        shortestJobFirst,
	SRTF:       shortestRemainingTimeFirst,
	PriorityNP: priorityNonPreemptive,
	PriorityP:  priorityPreemptive,
	RoundRobin: roundRobin,
}

// run is the private state of a single simulation. Nothing in it is shared
// with the caller or with other runs.
type run struct {
	states    []*job.State // submission order
	byArrival []*job.State // (arrival, submission) order
	quantum   int
	tl        timeline
}

func newRun(jobs []job.Job, quantum int) *run {
	states := make([]*job.State, len(jobs))
	for i, j := range jobs {
		states[i] = job.NewState(j, i)
	}
	byArrival := make([]*job.State, len(states))
	copy(byArrival, states)
	sort.SliceStable(byArrival, func(i, k int) bool {
		return earlier(byArrival[i], byArrival[k])
	})
	return &run{
		states:    states,
		byArrival: byArrival,
		quantum:   quantum,
	}
}

// unreachable reports a loop that can make no further progress.
func (r *run) unreachable(now int) error {
	left := 0
	for _, s := range r.states {
		if !s.Done() {
			left++
		}
	}
	return fmt.Errorf("%w: no job can become eligible after t=%d with %d unfinished", ErrInvariantViolation, now, left)
}

func (r *run) result(policy Policy) *Result {
	metrics := make([]Metric, len(r.states))
	for i, s := range r.states {
		metrics[i] = newMetric(s)
	}
	res := &Result{
		Policy:    policy,
		Intervals: r.tl.intervals,
		Metrics:   metrics,
		Summary:   summarize(r.tl.intervals, metrics),
	}
	if policy.NeedsQuantum() {
		res.Quantum = r.quantum
	}
	return res
}

// Simulate runs policy over jobs and returns the timeline and per-job metrics.
// jobs is only read; every call works on its own copy of the job state, so
// concurrent calls over the same slice are safe.
func Simulate(policy Policy, jobs []job.Job, setOpts ...SetOption) (*Result, error) {
	opts := defaultOptions()
	for _, setOpt := range setOpts {
		setOpt(&opts)
	}

	if err := validate(policy, jobs, opts); err != nil {
		return nil, err
	}

	r := newRun(jobs, opts.quantum)
	if err := algorithms[policy](r); err != nil {
		return nil, err
	}

	res := r.result(policy)
	if err := checkResult(res); err != nil {
		if opts.strictInvariants {
			return nil, err
		}
		log.Printf("[scheduler] policy=%s: %v", policy, err)
	}
	return res, nil
}

// Compare runs every policy over the same jobs in parallel. Results are in
// the order of policies.
func Compare(jobs []job.Job, policies []Policy, setOpts ...SetOption) ([]*Result, error) {
	results := make([]*Result, len(policies))
	errs := make([]error, len(policies))

	var wg sync.WaitGroup
	for i, p := range policies {
		wg.Add(1)
		go func(i int, p Policy) {
			defer wg.Done()
			res, err := Simulate(p, jobs, setOpts...)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", p, err)
				return
			}
			results[i] = res
		}(i, p)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func validate(policy Policy, jobs []job.Job, opts Options) error {
	if !policy.valid() {
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidInput, int(policy))
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalidInput)
	}
	if policy.NeedsQuantum() && opts.quantum <= 0 {
		return fmt.Errorf("%w: %s needs a positive quantum, got %d", ErrInvalidInput, policy, opts.quantum)
	}

	seen := make(map[string]struct{}, len(jobs))
	lastArrival, totalService := 0, 0
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		// The makespan is at most the last arrival plus all the work.
		if totalService > math.MaxInt-j.Service {
			return fmt.Errorf("%w: total service time overflows at job %s", ErrInvalidInput, j.ID)
		}
		totalService += j.Service
		lastArrival = max(lastArrival, j.Arrival)
		if lastArrival > math.MaxInt-totalService {
			return fmt.Errorf("%w: schedule would end past the largest representable time at job %s", ErrInvalidInput, j.ID)
		}
		if _, dup := seen[j.ID]; dup {
			return fmt.Errorf("%w: duplicate job id %q", ErrInvalidInput, j.ID)
		}
		seen[j.ID] = struct{}{}
		if policy.NeedsPriority() && !j.HasPriority() {
			return fmt.Errorf("%w: %s needs a priority for job %s", ErrInvalidInput, policy, j.ID)
		}
	}
	return nil
}
