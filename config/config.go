package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cookiefied/processscheduler/job"
	"github.com/cookiefied/processscheduler/scheduler"
)

// DefaultQuantum is the Round Robin time slice used when the file sets none.
const DefaultQuantum = 1

// Config describes one simulation file.
type Config struct {
	// Quantum is the Round Robin time slice. Zero means DefaultQuantum.
	Quantum int `yaml:"quantum"`
	// Policies to run. Empty means every policy the jobs allow.
	Policies []string `yaml:"policies"`
	// Jobs in submission order.
	Jobs []job.Job `yaml:"jobs"`

	policies []scheduler.Policy
}

// Load reads a YAML config file from the given path and returns the parsed Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SelectedPolicies returns the parsed policy list.
func (c *Config) SelectedPolicies() []scheduler.Policy {
	return c.policies
}

// Options returns the engine options implied by the file.
func (c *Config) Options() []scheduler.SetOption {
	return []scheduler.SetOption{scheduler.WithQuantum(c.Quantum)}
}

// validate checks that all config values are valid.
func (c *Config) validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("invalid config: no jobs")
	}

	for i := range c.Jobs {
		if c.Jobs[i].ID == "" {
			c.Jobs[i].ID = "P" + strconv.Itoa(i+1)
		}
		if err := c.Jobs[i].Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	switch {
	case c.Quantum < 0:
		return fmt.Errorf("invalid config: quantum must be positive, got %d", c.Quantum)
	case c.Quantum == 0:
		c.Quantum = DefaultQuantum
	}

	policies := scheduler.PoliciesFor(c.Jobs)
	if len(c.Policies) > 0 {
		var err error
		if policies, err = scheduler.ParsePolicies(c.Policies); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	for _, p := range policies {
		if p.NeedsPriority() {
			for _, j := range c.Jobs {
				if !j.HasPriority() {
					return fmt.Errorf("invalid config: policy %s needs a priority for job %s", p, j.ID)
				}
			}
		}
	}
	c.policies = policies
	return nil
}
