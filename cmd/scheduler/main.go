package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cookiefied/processscheduler/config"
	"github.com/cookiefied/processscheduler/job"
	"github.com/cookiefied/processscheduler/loader"
	"github.com/cookiefied/processscheduler/report"
	"github.com/cookiefied/processscheduler/scheduler"
)

var ErrInvalidArgs = errors.New("invalid args")

type cliOptions struct {
	policy  string
	quantum int
	strict  bool
	pretty  bool
	compare bool
	path    string
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("scheduler", flag.ContinueOnError)
	fs.StringVar(&opts.policy, "policy", "all", "comma separated policies to run, or all (skips the priority policies when a job has no priority)")
	fs.IntVar(&opts.quantum, "quantum", 0, "round robin time quantum, overrides the YAML file (default 1)")
	fs.BoolVar(&opts.strict, "strict", false, "fail when a result breaks a schedule invariant")
	fs.BoolVar(&opts.pretty, "pretty", false, "dump results as Go values instead of tables")
	fs.BoolVar(&opts.compare, "compare", true, "print a comparison table after the schedules")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() != 1 {
		return opts, fmt.Errorf("%w: must give a scheduling file to process", ErrInvalidArgs)
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

// run loads the scheduling file, simulates the selected policies and writes
// the reports to w.
func run(w io.Writer, opts cliOptions) error {
	jobs, policies, quantum, err := loadInput(opts)
	if err != nil {
		return err
	}

	results, err := scheduler.Compare(jobs, policies,
		scheduler.WithQuantum(quantum),
		scheduler.WithStrictInvariants(opts.strict))
	if err != nil {
		return err
	}

	for _, res := range results {
		if opts.pretty {
			_, _ = fmt.Fprintln(w, report.Pretty(res))
			continue
		}
		report.Result(w, res)
	}
	if opts.compare && !opts.pretty && len(results) > 1 {
		report.Comparison(w, results)
	}
	return nil
}

// loadInput reads jobs from a YAML config or a CSV file. Flags override the
// policy and quantum a YAML file sets.
func loadInput(opts cliOptions) ([]job.Job, []scheduler.Policy, int, error) {
	switch strings.ToLower(filepath.Ext(opts.path)) {
	case ".yaml", ".yml":
		cfg, err := config.Load(opts.path)
		if err != nil {
			return nil, nil, 0, err
		}
		policies := cfg.SelectedPolicies()
		if len(cfg.Policies) == 0 {
			logSkipped(policies)
		}
		if opts.policy != "all" {
			if policies, err = selectPolicies(opts.policy, cfg.Jobs); err != nil {
				return nil, nil, 0, err
			}
		}
		quantum := cfg.Quantum
		if opts.quantum > 0 {
			quantum = opts.quantum
		}
		return cfg.Jobs, policies, quantum, nil
	default:
		f, closeFile, err := openProcessingFile(opts.path)
		if err != nil {
			return nil, nil, 0, err
		}
		defer closeFile()

		jobs, err := loader.Load(f)
		if err != nil {
			return nil, nil, 0, err
		}
		policies, err := selectPolicies(opts.policy, jobs)
		if err != nil {
			return nil, nil, 0, err
		}
		// By default, we use a time quantum of 1.
		quantum := 1
		if opts.quantum > 0 {
			quantum = opts.quantum
		}
		return jobs, policies, quantum, nil
	}
}

// selectPolicies parses name. "all" skips the priority policies when some job
// has no priority, since the priority column and field are optional.
func selectPolicies(name string, jobs []job.Job) ([]scheduler.Policy, error) {
	if !strings.EqualFold(name, "all") {
		return scheduler.ParsePolicies(strings.Split(name, ","))
	}
	policies := scheduler.PoliciesFor(jobs)
	logSkipped(policies)
	return policies, nil
}

func logSkipped(policies []scheduler.Policy) {
	if len(policies) == len(scheduler.Policies()) {
		return
	}
	for _, p := range scheduler.Policies() {
		if !slices.Contains(policies, p) {
			log.Printf("[scheduler] skipping %s: not every job has a priority", p)
		}
	}
}

func openProcessingFile(path string) (*os.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: error opening scheduling file", err)
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			log.Printf("%v: error closing scheduling file", err)
		}
	}

	return f, closeFn, nil
}
