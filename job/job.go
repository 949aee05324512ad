package job

import (
	"errors"
	"fmt"
)

// Unset marks a State time that has not been reached yet.
const Unset = -1

// ErrInvalidJob is returned by Validate when a job breaks the input contract.
var ErrInvalidJob = errors.New("invalid job")

// Job is one unit of work to schedule. It is never modified by a simulation.
type Job struct {
	ID       string `json:"id" yaml:"id"`
	Arrival  int    `json:"arrival" yaml:"arrival"`
	Service  int    `json:"burst" yaml:"burst"`
	Priority *int   `json:"priority,omitempty" yaml:"priority,omitempty"` // Lower value = higher priority
}

// PriorityOf returns a pointer suitable for Job.Priority.
func PriorityOf(p int) *int {
	return &p
}

// HasPriority reports whether a priority was given.
func (j Job) HasPriority() bool {
	return j.Priority != nil
}

// PriorityValue returns the job's priority, or 0 when none was given.
func (j Job) PriorityValue() int {
	if j.Priority == nil {
		return 0
	}
	return *j.Priority
}

// Validate checks the arrival and service invariants.
func (j Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidJob)
	}
	if j.Service <= 0 {
		return fmt.Errorf("%w: %s: service time must be positive, got %d", ErrInvalidJob, j.ID, j.Service)
	}
	if j.Arrival < 0 {
		return fmt.Errorf("%w: %s: arrival time must be non-negative, got %d", ErrInvalidJob, j.ID, j.Arrival)
	}
	return nil
}

// State is the mutable, run-local view of a job. Each simulation run owns its
// own States and throws them away once the result is built.
type State struct {
	Job        Job
	Seq        int // submission order, the last tie-break
	Remaining  int
	FirstStart int
	Completion int
}

// NewState returns a fresh State for j submitted at position seq.
func NewState(j Job, seq int) *State {
	return &State{
		Job:        j,
		Seq:        seq,
		Remaining:  j.Service,
		FirstStart: Unset,
		Completion: Unset,
	}
}

// Started reports whether the job has occupied the resource at least once.
func (s *State) Started() bool {
	return s.FirstStart != Unset
}

// Done reports whether the job has no work left.
func (s *State) Done() bool {
	return s.Remaining == 0
}

// ExecutesFor runs the job for up to units starting at from and returns the
// time actually consumed.
func (s *State) ExecutesFor(from, units int) int {
	if s.Remaining <= 0 {
		panic(fmt.Sprintf("job %s executed with remaining %d", s.Job.ID, s.Remaining))
	}
	if s.FirstStart == Unset {
		s.FirstStart = from
	}
	if units > s.Remaining {
		units = s.Remaining
	}
	s.Remaining -= units
	if s.Remaining == 0 {
		s.Completion = from + units
	}
	return units
}

// ArrivedBy reports whether the job is eligible at time t.
func (s *State) ArrivedBy(t int) bool {
	return s.Job.Arrival <= t
}
