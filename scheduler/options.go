package scheduler

// Options holds the tunables for one Simulate call.
type Options struct {
	quantum          int
	strictInvariants bool
}

func defaultOptions() Options {
	return Options{
		quantum:          0,
		strictInvariants: false,
	}
}

type SetOption func(options *Options)

// WithQuantum sets the Round Robin time slice. Other policies ignore it.
func WithQuantum(quantum int) SetOption {
	return func(options *Options) {
		options.quantum = quantum
	}
}

// WithStrictInvariants makes Simulate fail with ErrInvariantViolation instead
// of logging the violation and returning the result.
func WithStrictInvariants(strict bool) SetOption {
	return func(options *Options) {
		options.strictInvariants = strict
	}
}
