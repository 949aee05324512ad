package scheduler

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/cookiefied/processscheduler/job"
)

func labels(intervals []Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = fmt.Sprintf("%s:%d-%d", iv.Label(), iv.Start, iv.End)
	}
	return out
}

func mustSimulate(t *testing.T, p Policy, jobs []job.Job, opts ...SetOption) *Result {
	t.Helper()
	opts = append(opts, WithStrictInvariants(true))
	res, err := Simulate(p, jobs, opts...)
	if err != nil {
		t.Fatalf("Simulate(%s): %v", p, err)
	}
	return res
}

func assertTimeline(t *testing.T, res *Result, want []string) {
	t.Helper()
	got := labels(res.Intervals)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s timeline: got %v, want %v", res.Policy, got, want)
	}
}

func assertMetric(t *testing.T, res *Result, id string, start, completion, waiting int) {
	t.Helper()
	m, ok := res.Metric(id)
	if !ok {
		t.Fatalf("%s: no metric for %s", res.Policy, id)
	}
	if m.StartTime != start || m.CompletionTime != completion || m.WaitingTime != waiting {
		t.Errorf("%s %s: got start=%d completion=%d waiting=%d, want start=%d completion=%d waiting=%d",
			res.Policy, id, m.StartTime, m.CompletionTime, m.WaitingTime, start, completion, waiting)
	}
}

func withPriority(j job.Job, p int) job.Job {
	j.Priority = job.PriorityOf(p)
	return j
}

func TestFCFS_ArrivalOrder(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 5},
		{ID: "P2", Arrival: 1, Service: 3},
	}
	res := mustSimulate(t, FCFS, jobs)
	assertTimeline(t, res, []string{"P1:0-5", "P2:5-8"})
	assertMetric(t, res, "P1", 0, 5, 0)
	assertMetric(t, res, "P2", 5, 8, 4)
}

func TestFCFS_UnsortedInputAndIdleGap(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 3, Service: 1},
		{ID: "P2", Arrival: 0, Service: 2},
	}
	res := mustSimulate(t, FCFS, jobs)
	assertTimeline(t, res, []string{"P2:0-2", "IDLE:2-3", "P1:3-4"})

	// Metrics stay in submission order.
	if res.Metrics[0].JobID != "P1" || res.Metrics[1].JobID != "P2" {
		t.Errorf("expected metrics in submission order, got %s, %s", res.Metrics[0].JobID, res.Metrics[1].JobID)
	}
}

func TestFCFS_SameArrivalUsesSubmissionOrder(t *testing.T) {
	jobs := []job.Job{
		{ID: "B", Arrival: 0, Service: 1},
		{ID: "A", Arrival: 0, Service: 1},
	}
	res := mustSimulate(t, FCFS, jobs)
	assertTimeline(t, res, []string{"B:0-1", "A:1-2"})
}

func TestSJF_PicksShortestAtCompletion(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 8},
		{ID: "P2", Arrival: 1, Service: 4},
		{ID: "P3", Arrival: 2, Service: 2},
	}
	res := mustSimulate(t, SJF, jobs)
	assertTimeline(t, res, []string{"P1:0-8", "P3:8-10", "P2:10-14"})
	assertMetric(t, res, "P2", 10, 14, 9)
	assertMetric(t, res, "P3", 8, 10, 6)
}

func TestSJF_TieBreaks(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 4},
		{ID: "P2", Arrival: 1, Service: 2},
		{ID: "P3", Arrival: 2, Service: 2},
		{ID: "P4", Arrival: 2, Service: 2},
	}
	res := mustSimulate(t, SJF, jobs)
	// Equal service: earlier arrival first, then submission order.
	assertTimeline(t, res, []string{"P1:0-4", "P2:4-6", "P3:6-8", "P4:8-10"})
}

func TestSJF_IdleUntilFirstArrival(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 2, Service: 3},
		{ID: "P2", Arrival: 9, Service: 1},
	}
	res := mustSimulate(t, SJF, jobs)
	assertTimeline(t, res, []string{"IDLE:0-2", "P1:2-5", "IDLE:5-9", "P2:9-10"})
}

func TestSRTF_Preempts(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 8},
		{ID: "P2", Arrival: 1, Service: 4},
	}
	res := mustSimulate(t, SRTF, jobs)
	assertTimeline(t, res, []string{"P1:0-1", "P2:1-5", "P1:5-12"})
	assertMetric(t, res, "P1", 0, 12, 4)
	assertMetric(t, res, "P2", 1, 5, 0)
}

func TestSRTF_EqualRemainingDoesNotPreempt(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 4},
		{ID: "P2", Arrival: 1, Service: 3},
	}
	res := mustSimulate(t, SRTF, jobs)
	assertTimeline(t, res, []string{"P1:0-4", "P2:4-7"})
}

func TestSRTF_TiesGoToEarlierArrivalThenSubmission(t *testing.T) {
	// P3 and P2 both wait with 3 left; P3 arrived first.
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 4},
		{ID: "P2", Arrival: 2, Service: 3},
		{ID: "P3", Arrival: 1, Service: 3},
	}
	res := mustSimulate(t, SRTF, jobs)
	assertTimeline(t, res, []string{"P1:0-4", "P3:4-7", "P2:7-10"})

	// Same arrival and remaining time: C was submitted before B.
	jobs = []job.Job{
		{ID: "A", Arrival: 0, Service: 2},
		{ID: "C", Arrival: 1, Service: 3},
		{ID: "B", Arrival: 1, Service: 3},
	}
	res = mustSimulate(t, SRTF, jobs)
	assertTimeline(t, res, []string{"A:0-2", "C:2-5", "B:5-8"})
}

func TestSRTF_LargeServiceTime(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 1_000_000_000_000},
		{ID: "P2", Arrival: 10, Service: 5},
	}
	res := mustSimulate(t, SRTF, jobs)
	assertTimeline(t, res, []string{"P1:0-10", "P2:10-15", "P1:15-1000000000005"})
}

func TestSRTF_CollapsesIdleGap(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 2},
		{ID: "P2", Arrival: 5, Service: 3},
		{ID: "P3", Arrival: 6, Service: 1},
	}
	res := mustSimulate(t, SRTF, jobs)
	assertTimeline(t, res, []string{"P1:0-2", "IDLE:2-5", "P2:5-6", "P3:6-7", "P2:7-9"})
	assertMetric(t, res, "P2", 5, 9, 1)
}

func TestPriorityNP_LowestValueFirst(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 4}, 3),
		withPriority(job.Job{ID: "P2", Arrival: 1, Service: 3}, 1),
		withPriority(job.Job{ID: "P3", Arrival: 2, Service: 2}, 2),
		withPriority(job.Job{ID: "P4", Arrival: 2, Service: 1}, 1),
	}
	res := mustSimulate(t, PriorityNP, jobs)
	assertTimeline(t, res, []string{"P1:0-4", "P2:4-7", "P4:7-8", "P3:8-10"})
	assertMetric(t, res, "P3", 8, 10, 6)
}

func TestPriorityP_PreemptsOnStrictlyHigherPriority(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 5}, 3),
		withPriority(job.Job{ID: "P2", Arrival: 1, Service: 2}, 1),
		withPriority(job.Job{ID: "P3", Arrival: 2, Service: 2}, 2),
	}
	res := mustSimulate(t, PriorityP, jobs)
	assertTimeline(t, res, []string{"P1:0-1", "P2:1-3", "P3:3-5", "P1:5-9"})
	assertMetric(t, res, "P1", 0, 9, 4)
	assertMetric(t, res, "P2", 1, 3, 0)
	assertMetric(t, res, "P3", 3, 5, 1)
}

func TestPriorityP_EqualPriorityDoesNotPreempt(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 3}, 1),
		withPriority(job.Job{ID: "P2", Arrival: 1, Service: 2}, 1),
	}
	res := mustSimulate(t, PriorityP, jobs)
	assertTimeline(t, res, []string{"P1:0-3", "P2:3-5"})
}

func TestPriorityP_TiesGoToEarlierArrivalThenSubmission(t *testing.T) {
	// X and Y share priority 1; Y arrived first although X was submitted first.
	jobs := []job.Job{
		withPriority(job.Job{ID: "X", Arrival: 2, Service: 2}, 1),
		withPriority(job.Job{ID: "Y", Arrival: 1, Service: 2}, 1),
		withPriority(job.Job{ID: "Z", Arrival: 0, Service: 4}, 0),
	}
	res := mustSimulate(t, PriorityP, jobs)
	assertTimeline(t, res, []string{"Z:0-4", "Y:4-6", "X:6-8"})

	// Same arrival and priority: C was submitted before B.
	jobs = []job.Job{
		withPriority(job.Job{ID: "A", Arrival: 0, Service: 2}, 0),
		withPriority(job.Job{ID: "C", Arrival: 1, Service: 1}, 1),
		withPriority(job.Job{ID: "B", Arrival: 1, Service: 1}, 1),
	}
	res = mustSimulate(t, PriorityP, jobs)
	assertTimeline(t, res, []string{"A:0-2", "C:2-3", "B:3-4"})
}

func TestPriorityP_CollapsesIdleGap(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 2, Service: 2}, 1),
		withPriority(job.Job{ID: "P2", Arrival: 6, Service: 1}, 0),
	}
	res := mustSimulate(t, PriorityP, jobs)
	assertTimeline(t, res, []string{"IDLE:0-2", "P1:2-4", "IDLE:4-6", "P2:6-7"})
}

func TestRoundRobin_NewArrivalsBeforeReturningJob(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 5},
		{ID: "P2", Arrival: 1, Service: 3},
	}
	res := mustSimulate(t, RoundRobin, jobs, WithQuantum(2))
	assertTimeline(t, res, []string{"P1:0-2", "P2:2-4", "P1:4-6", "P2:6-7", "P1:7-8"})
	assertMetric(t, res, "P1", 0, 8, 3)
	assertMetric(t, res, "P2", 2, 7, 3)
	if res.Quantum != 2 {
		t.Errorf("expected quantum 2 in result, got %d", res.Quantum)
	}
}

func TestRoundRobin_ArrivalAtSliceBoundary(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 4},
		{ID: "P2", Arrival: 2, Service: 2},
	}
	res := mustSimulate(t, RoundRobin, jobs, WithQuantum(2))
	assertTimeline(t, res, []string{"P1:0-2", "P2:2-4", "P1:4-6"})
}

func TestRoundRobin_LoneJobCoalesces(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 1},
		{ID: "P2", Arrival: 4, Service: 5},
	}
	res := mustSimulate(t, RoundRobin, jobs, WithQuantum(2))
	assertTimeline(t, res, []string{"P1:0-1", "IDLE:1-4", "P2:4-9"})
}

func TestRoundRobin_LoneJobRunsUntilNextArrival(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 1_000_000_000_000},
		{ID: "P2", Arrival: 7, Service: 2},
	}
	res := mustSimulate(t, RoundRobin, jobs, WithQuantum(3))
	// P2 arrives inside P1's third slice and is served once that slice ends.
	assertTimeline(t, res, []string{"P1:0-9", "P2:9-11", "P1:11-1000000000002"})
}

func TestIdleGapAllPolicies(t *testing.T) {
	jobs := []job.Job{withPriority(job.Job{ID: "P1", Arrival: 3, Service: 2}, 1)}
	for _, p := range Policies() {
		t.Run(p.String(), func(t *testing.T) {
			res := mustSimulate(t, p, jobs, WithQuantum(1))
			assertTimeline(t, res, []string{"IDLE:0-3", "P1:3-5"})
			assertMetric(t, res, "P1", 3, 5, 0)
		})
	}
}

func TestSummary(t *testing.T) {
	jobs := []job.Job{
		{ID: "P1", Arrival: 0, Service: 5},
		{ID: "P2", Arrival: 1, Service: 3},
	}
	res := mustSimulate(t, RoundRobin, jobs, WithQuantum(2))
	sum := res.Summary
	if sum.Makespan != 8 || res.Makespan() != 8 {
		t.Errorf("expected makespan 8, got %d / %d", sum.Makespan, res.Makespan())
	}
	if sum.ContextSwitches != 4 {
		t.Errorf("expected 4 context switches, got %d", sum.ContextSwitches)
	}
	if sum.AvgWaiting != 3 {
		t.Errorf("expected avg waiting 3, got %v", sum.AvgWaiting)
	}
	if sum.AvgTurnaround != 7 {
		t.Errorf("expected avg turnaround 7, got %v", sum.AvgTurnaround)
	}
	if sum.AvgResponse != 0.5 {
		t.Errorf("expected avg response 0.5, got %v", sum.AvgResponse)
	}

	idle := mustSimulate(t, FCFS, []job.Job{{ID: "P1", Arrival: 3, Service: 2}})
	if idle.Summary.IdleTime != 3 {
		t.Errorf("expected idle time 3, got %d", idle.Summary.IdleTime)
	}
	if idle.Summary.Utilization != 0.4 {
		t.Errorf("expected utilization 0.4, got %v", idle.Summary.Utilization)
	}
	if idle.Summary.Throughput != 0.2 {
		t.Errorf("expected throughput 0.2, got %v", idle.Summary.Throughput)
	}
}

func TestSimulate_InvalidInput(t *testing.T) {
	ok := []job.Job{{ID: "P1", Arrival: 0, Service: 1}}
	tests := []struct {
		name   string
		policy Policy
		jobs   []job.Job
		opts   []SetOption
	}{
		{"no jobs", FCFS, nil, nil},
		{"zero service", FCFS, []job.Job{{ID: "P1", Arrival: 0, Service: 0}}, nil},
		{"negative arrival", SJF, []job.Job{{ID: "P1", Arrival: -1, Service: 2}}, nil},
		{"empty id", SRTF, []job.Job{{Arrival: 0, Service: 2}}, nil},
		{"duplicate id", FCFS, []job.Job{{ID: "P1", Service: 1}, {ID: "P1", Service: 2}}, nil},
		{"priority missing", PriorityNP, ok, nil},
		{"preemptive priority missing", PriorityP, ok, nil},
		{"quantum missing", RoundRobin, ok, nil},
		{"quantum zero", RoundRobin, ok, []SetOption{WithQuantum(0)}},
		{"quantum negative", RoundRobin, ok, []SetOption{WithQuantum(-3)}},
		{"unknown policy", Policy(42), ok, nil},
		{"end time overflows", FCFS, []job.Job{{ID: "P1", Arrival: math.MaxInt - 1, Service: 3}}, nil},
		{"total service overflows", SRTF, []job.Job{{ID: "P1", Service: math.MaxInt}, {ID: "P2", Service: 1}}, nil},
		{"late arrival overflows", RoundRobin, []job.Job{{ID: "P1", Service: 5}, {ID: "P2", Arrival: math.MaxInt - 2, Service: 1}}, []SetOption{WithQuantum(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Simulate(tt.policy, tt.jobs, tt.opts...)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if res != nil {
				t.Errorf("expected no result, got %+v", res)
			}
		})
	}
}

func TestSimulate_QuantumIgnoredOutsideRoundRobin(t *testing.T) {
	jobs := []job.Job{{ID: "P1", Arrival: 0, Service: 3}}
	res := mustSimulate(t, FCFS, jobs, WithQuantum(-1))
	if res.Quantum != 0 {
		t.Errorf("expected no quantum on FCFS result, got %d", res.Quantum)
	}
}

func TestSimulate_PriorityIgnoredOutsidePriorityPolicies(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 3}, 9),
		withPriority(job.Job{ID: "P2", Arrival: 0, Service: 1}, 0),
	}
	res := mustSimulate(t, FCFS, jobs)
	assertTimeline(t, res, []string{"P1:0-3", "P2:3-4"})
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P3", Arrival: 4, Service: 2}, 2),
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 6}, 1),
		withPriority(job.Job{ID: "P2", Arrival: 1, Service: 3}, 0),
	}
	before := make([]job.Job, len(jobs))
	copy(before, jobs)

	for _, p := range Policies() {
		mustSimulate(t, p, jobs, WithQuantum(2))
	}
	if !reflect.DeepEqual(jobs, before) {
		t.Errorf("input changed: got %+v, want %+v", jobs, before)
	}
}

func TestSimulate_Idempotent(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 6}, 2),
		withPriority(job.Job{ID: "P2", Arrival: 2, Service: 2}, 1),
		withPriority(job.Job{ID: "P3", Arrival: 3, Service: 4}, 3),
	}
	for _, p := range Policies() {
		first := mustSimulate(t, p, jobs, WithQuantum(3))
		second := mustSimulate(t, p, jobs, WithQuantum(3))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: runs differ: %v vs %v", p, labels(first.Intervals), labels(second.Intervals))
		}
	}
}

func TestCompare(t *testing.T) {
	jobs := []job.Job{
		withPriority(job.Job{ID: "P1", Arrival: 0, Service: 8}, 2),
		withPriority(job.Job{ID: "P2", Arrival: 1, Service: 4}, 1),
	}
	policies := Policies()
	results, err := Compare(jobs, policies, WithQuantum(2), WithStrictInvariants(true))
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(results) != len(policies) {
		t.Fatalf("expected %d results, got %d", len(policies), len(results))
	}
	for i, res := range results {
		if res.Policy != policies[i] {
			t.Errorf("result %d: expected %s, got %s", i, policies[i], res.Policy)
		}
		single := mustSimulate(t, policies[i], jobs, WithQuantum(2))
		if !reflect.DeepEqual(res, single) {
			t.Errorf("%s: parallel result differs from single run", policies[i])
		}
	}
}

func TestCompare_ReportsFailingPolicy(t *testing.T) {
	jobs := []job.Job{{ID: "P1", Arrival: 0, Service: 2}}
	_, err := Compare(jobs, []Policy{FCFS, RoundRobin})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
