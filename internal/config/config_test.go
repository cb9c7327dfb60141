package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/genetic"
	"github.com/SeamusWaldron/pocketcube/internal/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pocketcube.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultMatchesSolverDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	params, err := cfg.SolverParams()
	require.NoError(t, err)
	assert.Equal(t, solver.DefaultConfig(), params)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
seed: 42
solver:
  turns: 20
  restricted_turns: 0
  population: 200
  scramble: "R U F'"
  scorer: linear
results:
  path: out/results.csv
  delimiter: tab
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	params, err := cfg.SolverParams()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), params.Seed)
	assert.Equal(t, 20, params.Turns)
	assert.Equal(t, 0, params.RestrictedTurns)
	assert.Equal(t, 200, params.PopulationSize)
	assert.Equal(t, genetic.ScorerLinear, params.Scorer)
	assert.Equal(t, []pocketcube.Action{pocketcube.R, pocketcube.U, pocketcube.FPrime}, params.Scramble)

	// Untouched keys keep their defaults.
	assert.Equal(t, 0.2, params.MutationRate)
	assert.Equal(t, 500, params.StagnationLimit)
	assert.Equal(t, 25, params.RetryTurns)

	delim, err := cfg.Delimiter()
	require.NoError(t, err)
	assert.Equal(t, '\t', delim)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)
	assert.Equal(t, "out/results.csv", cfg.Results.Path)
}

func TestLoadAppliesDefaultsToBlankedValues(t *testing.T) {
	path := writeConfig(t, `
solver:
  scorer: ""
  workers: 0
results:
  delimiter: ""
logging:
  level: ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, genetic.ScorerLayeredCubic, cfg.Solver.Scorer)
	assert.Equal(t, 1, cfg.Solver.Workers)
	assert.Equal(t, ",", cfg.Results.Delimiter)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "solver: [not, a, map]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad scramble", func(c *Config) { c.Solver.Scramble = "R Q" }},
		{"restricted above turns", func(c *Config) { c.Solver.RestrictedTurns = c.Solver.Turns + 1 }},
		{"unknown scorer", func(c *Config) { c.Solver.Scorer = "quadratic" }},
		{"long delimiter", func(c *Config) { c.Results.Delimiter = ";;" }},
		{"quote delimiter", func(c *Config) { c.Results.Delimiter = `"` }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
