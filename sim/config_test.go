package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Servers:      2,
		Arrival:      expSpec(1.0),
		Service:      expSpec(2.0),
		Horizon:      100,
		Replications: 1,
		Seed:         1,
	}
}

func TestConfig_Validate_Accepts(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	// event-count bound instead of a time horizon is also fine
	cfg.Horizon = 0
	cfg.MaxEvents = 1000
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_NamesOffendingField(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"zero servers", func(c *Config) { c.Servers = 0 }, "servers"},
		{"negative servers", func(c *Config) { c.Servers = -3 }, "servers"},
		{"negative horizon", func(c *Config) { c.Horizon = -1 }, "horizon"},
		{"no stop condition", func(c *Config) { c.Horizon = 0; c.MaxEvents = 0 }, "horizon"},
		{"negative max events", func(c *Config) { c.MaxEvents = -1 }, "max_events"},
		{"zero replications", func(c *Config) { c.Replications = 0 }, "replications"},
		{"negative capacity", func(c *Config) { c.QueueCapacity = -1 }, "queue_capacity"},
		{"negative parallelism", func(c *Config) { c.Parallelism = -1 }, "parallelism"},
		{"bad arrival rate", func(c *Config) { c.Arrival = expSpec(0) }, "arrival.rate"},
		{"bad service family", func(c *Config) { c.Service = DistSpec{Family: "weird"} }, "service.family"},
		{"bad patience", func(c *Config) { p := expSpec(-1); c.Patience = &p }, "patience.rate"},
		{"negative break every", func(c *Config) { c.Break = &BreakSpec{Every: -1, Duration: detSpec(2)} }, "break.every"},
		{"bad break duration", func(c *Config) { c.Break = &BreakSpec{Every: 5, Duration: detSpec(0)} }, "break.duration.value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			var ipe *InvalidParameterError
			require.True(t, errors.As(err, &ipe), "want InvalidParameterError, got %v", err)
			assert.Equal(t, tc.wantField, ipe.Field)
		})
	}
}

func TestLoadScenario_RoundTrip(t *testing.T) {
	// GIVEN a scenario file
	scenario := `
servers: 3
arrival:
  family: exponential
  params:
    rate: 2.0
service:
  family: lognormal
  params:
    mu: 0.5
    sigma: 0.25
horizon: 480
replications: 10
seed: 7
queue_capacity: 15
patience:
  family: exponential
  params:
    rate: 0.1
break:
  every: 6
  duration:
    family: deterministic
    params:
      value: 5
parallelism: 4
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	// WHEN loading it
	cfg, err := LoadScenario(path)
	require.NoError(t, err)

	// THEN every field round-trips and validates
	assert.Equal(t, 3, cfg.Servers)
	assert.Equal(t, FamilyExponential, cfg.Arrival.Family)
	assert.Equal(t, 2.0, cfg.Arrival.Params["rate"])
	assert.Equal(t, FamilyLogNormal, cfg.Service.Family)
	assert.Equal(t, 480.0, cfg.Horizon)
	assert.Equal(t, 10, cfg.Replications)
	assert.Equal(t, 15, cfg.QueueCapacity)
	require.NotNil(t, cfg.Patience)
	assert.Equal(t, 0.1, cfg.Patience.Params["rate"])
	require.NotNil(t, cfg.Break)
	assert.Equal(t, 6, cfg.Break.Every)
	assert.Equal(t, 5.0, cfg.Break.Duration.Params["value"])
	assert.Equal(t, 4, cfg.Parallelism)
	require.NoError(t, cfg.Validate())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers: [not a number"), 0o644))
	_, err := LoadScenario(path)
	require.Error(t, err)
}
