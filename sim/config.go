package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every run parameter for a simulation. It is populated either
// from CLI flags or from a YAML scenario file, and validated once before any
// replication starts.
type Config struct {
	// Servers is the number of agents answering calls (must be > 0).
	Servers int `yaml:"servers"`

	// Arrival is the inter-arrival time distribution.
	Arrival DistSpec `yaml:"arrival"`

	// Service is the service time distribution.
	Service DistSpec `yaml:"service"`

	// Horizon is the simulated time after which no new arrivals are
	// admitted. 0 means unbounded, in which case MaxEvents must be set.
	// An arrival falling exactly on the horizon is still admitted.
	Horizon float64 `yaml:"horizon"`

	// MaxEvents caps the number of dispatched events; once reached, the
	// arrival stream closes and the run drains. 0 = unlimited.
	MaxEvents int64 `yaml:"max_events,omitempty"`

	// Replications is the number of independent runs (must be >= 1).
	Replications int `yaml:"replications"`

	// Seed is the base random seed; replication i runs with Seed + i.
	Seed int64 `yaml:"seed"`

	// QueueCapacity bounds the wait queue; arrivals beyond it are lost.
	// 0 = unbounded.
	QueueCapacity int `yaml:"queue_capacity,omitempty"`

	// Patience, when set, is the distribution of how long a customer is
	// willing to wait before reneging. nil = infinite patience.
	Patience *DistSpec `yaml:"patience,omitempty"`

	// Break, when set, takes a server offline for a drawn duration after it
	// completes every Every-th call. nil = servers never take breaks.
	Break *BreakSpec `yaml:"break,omitempty"`

	// Parallelism is the number of replications run concurrently.
	// 0 or 1 = serial. Replications share no mutable state, so the
	// results are identical either way.
	Parallelism int `yaml:"parallelism,omitempty"`
}

// BreakSpec configures post-call breaks. After completing Every calls a
// server goes on a break drawn from Duration; it rejoins the pool (and takes
// the queue head, if any) when the break ends.
type BreakSpec struct {
	// Every is the number of completed calls between breaks.
	// 0 or 1 means a break after every call.
	Every int `yaml:"every,omitempty"`

	// Duration is the break length distribution.
	Duration DistSpec `yaml:"duration"`
}

// Validate fails fast on any out-of-range parameter, naming the offending
// field. It is called by RunReplications and NewSimulator before anything
// runs.
func (c *Config) Validate() error {
	if c.Servers <= 0 {
		return &InvalidParameterError{Field: "servers", Reason: "must be positive"}
	}
	if c.Horizon < 0 {
		return &InvalidParameterError{Field: "horizon", Reason: "must not be negative"}
	}
	if c.MaxEvents < 0 {
		return &InvalidParameterError{Field: "max_events", Reason: "must not be negative"}
	}
	if c.Horizon == 0 && c.MaxEvents == 0 {
		return &InvalidParameterError{Field: "horizon", Reason: "either horizon or max_events must be set"}
	}
	if c.Replications <= 0 {
		return &InvalidParameterError{Field: "replications", Reason: "must be positive"}
	}
	if c.QueueCapacity < 0 {
		return &InvalidParameterError{Field: "queue_capacity", Reason: "must not be negative"}
	}
	if c.Parallelism < 0 {
		return &InvalidParameterError{Field: "parallelism", Reason: "must not be negative"}
	}
	if err := c.Arrival.Validate("arrival"); err != nil {
		return err
	}
	if err := c.Service.Validate("service"); err != nil {
		return err
	}
	if c.Patience != nil {
		if err := c.Patience.Validate("patience"); err != nil {
			return err
		}
	}
	if c.Break != nil {
		if c.Break.Every < 0 {
			return &InvalidParameterError{Field: "break.every", Reason: "must not be negative"}
		}
		if err := c.Break.Duration.Validate("break.duration"); err != nil {
			return err
		}
	}
	return nil
}

// LoadScenario reads a YAML scenario file into a Config. The result is not
// yet validated; callers validate via Config.Validate (RunReplications does
// this on their behalf).
func LoadScenario(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &cfg, nil
}
