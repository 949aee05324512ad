package scheduler

import "github.com/cookiefied/processscheduler/job"

// IdleLabel is how idle intervals are labeled in output.
const IdleLabel = "IDLE"

// Interval is the half-open range [Start, End) during which JobID held the
// resource, or nothing did when Idle is set.
type Interval struct {
	JobID string `json:"job_id,omitempty"`
	Idle  bool   `json:"idle,omitempty"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Label returns the job id, or IdleLabel for idle intervals.
func (iv Interval) Label() string {
	if iv.Idle {
		return IdleLabel
	}
	return iv.JobID
}

func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

func (iv Interval) sameLabel(other Interval) bool {
	return iv.Idle == other.Idle && iv.JobID == other.JobID
}

// Metric holds the timing figures of one job.
type Metric struct {
	JobID          string `json:"id"`
	Arrival        int    `json:"arrival"`
	Service        int    `json:"burst"`
	Priority       *int   `json:"priority,omitempty"`
	StartTime      int    `json:"start"`
	CompletionTime int    `json:"completion"`
	TurnaroundTime int    `json:"turnaround"`
	WaitingTime    int    `json:"waiting"`
	ResponseTime   int    `json:"response"`
}

// Summary aggregates a result over all jobs.
type Summary struct {
	Makespan        int     `json:"makespan"`
	IdleTime        int     `json:"idle_time"`
	ContextSwitches int     `json:"context_switches"`
	AvgTurnaround   float64 `json:"avg_turnaround"`
	AvgWaiting      float64 `json:"avg_waiting"`
	AvgResponse     float64 `json:"avg_response"`
	Utilization     float64 `json:"utilization"`
	Throughput      float64 `json:"throughput"`
}

// Result is the outcome of one simulation run. Metrics follow submission order.
type Result struct {
	Policy    Policy     `json:"policy"`
	Quantum   int        `json:"quantum,omitempty"`
	Intervals []Interval `json:"intervals"`
	Metrics   []Metric   `json:"metrics"`
	Summary   Summary    `json:"summary"`
}

// Metric returns the metric of the job with the given id.
func (r *Result) Metric(id string) (Metric, bool) {
	for _, m := range r.Metrics {
		if m.JobID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Makespan is the end of the last interval.
func (r *Result) Makespan() int {
	if len(r.Intervals) == 0 {
		return 0
	}
	return r.Intervals[len(r.Intervals)-1].End
}

func newMetric(s *job.State) Metric {
	turnaround := s.Completion - s.Job.Arrival
	return Metric{
		JobID:          s.Job.ID,
		Arrival:        s.Job.Arrival,
		Service:        s.Job.Service,
		Priority:       s.Job.Priority,
		StartTime:      s.FirstStart,
		CompletionTime: s.Completion,
		TurnaroundTime: turnaround,
		WaitingTime:    turnaround - s.Job.Service,
		ResponseTime:   s.FirstStart - s.Job.Arrival,
	}
}

func summarize(intervals []Interval, metrics []Metric) Summary {
	var sum Summary
	if len(intervals) > 0 {
		sum.Makespan = intervals[len(intervals)-1].End
	}

	last := ""
	for _, iv := range intervals {
		if iv.Idle {
			sum.IdleTime += iv.Duration()
			continue
		}
		if last != "" && last != iv.JobID {
			sum.ContextSwitches++
		}
		last = iv.JobID
	}

	if len(metrics) > 0 {
		var turnaround, waiting, response int
		for _, m := range metrics {
			turnaround += m.TurnaroundTime
			waiting += m.WaitingTime
			response += m.ResponseTime
		}
		count := float64(len(metrics))
		sum.AvgTurnaround = float64(turnaround) / count
		sum.AvgWaiting = float64(waiting) / count
		sum.AvgResponse = float64(response) / count
	}
	if sum.Makespan > 0 {
		sum.Utilization = float64(sum.Makespan-sum.IdleTime) / float64(sum.Makespan)
		sum.Throughput = float64(len(metrics)) / float64(sum.Makespan)
	}
	return sum
}
