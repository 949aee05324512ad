package scheduler

import "github.com/cookiefied/processscheduler/job"

// Request is a simulation request as it arrives over the network. Policy
// names are parsed late so unknown names surface as ErrInvalidInput.
type Request struct {
	Policy   string    `json:"policy,omitempty"`
	Policies []string  `json:"policies,omitempty"`
	Quantum  int       `json:"quantum,omitempty"`
	Jobs     []job.Job `json:"jobs"`
}

// Simulate runs req.Policy. setOpts are applied after the request quantum.
func (req *Request) Simulate(setOpts ...SetOption) (*Result, error) {
	policy, err := ParsePolicy(req.Policy)
	if err != nil {
		return nil, err
	}
	return Simulate(policy, req.Jobs, req.options(setOpts)...)
}

// Compare runs req.Policies, or every policy when none are named.
func (req *Request) Compare(setOpts ...SetOption) ([]*Result, error) {
	names := req.Policies
	if len(names) == 0 {
		names = []string{"all"}
	}
	policies, err := ParsePolicies(names)
	if err != nil {
		return nil, err
	}
	return Compare(req.Jobs, policies, req.options(setOpts)...)
}

func (req *Request) options(setOpts []SetOption) []SetOption {
	return append([]SetOption{WithQuantum(req.Quantum)}, setOpts...)
}
