package scheduler

import (
	"fmt"
	"strings"

	"github.com/cookiefied/processscheduler/job"
)

// Policy selects a scheduling discipline.
type Policy int

const (
	FCFS       Policy = iota // First-come, first-served
	SJF                      // Shortest job first, non-preemptive
	SRTF                     // Shortest remaining time first, preemptive
	PriorityNP               // Priority, non-preemptive
	PriorityP                // Priority, preemptive
	RoundRobin               // Time-quantum round robin
)

var policyNames = map[Policy]string{
	FCFS:       "fcfs",
	SJF:        "sjf",
	SRTF:       "srtf",
	PriorityNP: "priority",
	PriorityP:  "priority-preemptive",
	RoundRobin: "rr",
}

var policyAliases = map[string]Policy{
	"first-come-first-serve": FCFS,
	"shortest-job-first":     SJF,
	"priority-np":            PriorityNP,
	"priority-p":             PriorityP,
	"round-robin":            RoundRobin,
}

// Policies returns every supported policy in a stable order.
func Policies() []Policy {
	return []Policy{FCFS, SJF, SRTF, PriorityNP, PriorityP, RoundRobin}
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// Title is the human readable name used in reports.
func (p Policy) Title() string {
	switch p {
	case FCFS:
		return "First-come, first-serve"
	case SJF:
		return "Shortest-job-first"
	case SRTF:
		return "Shortest-remaining-time-first"
	case PriorityNP:
		return "Priority"
	case PriorityP:
		return "Priority (preemptive)"
	case RoundRobin:
		return "Round-robin"
	default:
		return "Unknown"
	}
}

func (p Policy) valid() bool {
	_, ok := policyNames[p]
	return ok
}

// Preemptive reports whether a running job may be interrupted.
func (p Policy) Preemptive() bool {
	return p == SRTF || p == PriorityP || p == RoundRobin
}

// NeedsPriority reports whether every job must carry a priority.
func (p Policy) NeedsPriority() bool {
	return p == PriorityNP || p == PriorityP
}

// NeedsQuantum reports whether the policy requires WithQuantum.
func (p Policy) NeedsQuantum() bool {
	return p == RoundRobin
}

// PoliciesFor returns the policies jobs can run under, in Policies order.
// The priority policies are left out unless every job has a priority.
func PoliciesFor(jobs []job.Job) []Policy {
	withPriority := true
	for _, j := range jobs {
		if !j.HasPriority() {
			withPriority = false
			break
		}
	}
	var policies []Policy
	for _, p := range Policies() {
		if p.NeedsPriority() && !withPriority {
			continue
		}
		policies = append(policies, p)
	}
	return policies
}

// ParsePolicy maps a policy name to its Policy. Matching is case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	if p, ok := policyAliases[name]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, name)
}

// ParsePolicies parses a list of names. "all" expands to every policy.
func ParsePolicies(names []string) ([]Policy, error) {
	var policies []Policy
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			policies = append(policies, Policies()...)
			continue
		}
		p, err := ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func (p Policy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("unknown policy %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
