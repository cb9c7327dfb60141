// Package config loads solver settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/genetic"
	"github.com/SeamusWaldron/pocketcube/internal/solver"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root configuration structure
type Config struct {
	Seed    uint64        `yaml:"seed"`
	Solver  SolverConfig  `yaml:"solver"`
	Storage StorageConfig `yaml:"storage"`
	Results ResultsConfig `yaml:"results"`
	Logging LogConfig     `yaml:"logging"`
}

// SolverConfig defines the genetic algorithm and driver parameters
type SolverConfig struct {
	Turns                int     `yaml:"turns"`
	RestrictedTurns      int     `yaml:"restricted_turns"`
	Population           int     `yaml:"population"`
	MutationRate         float64 `yaml:"mutation_rate"`
	StagnationLimit      int     `yaml:"stagnation_limit"`
	GenerationCap        int     `yaml:"generation_cap"`
	RetryTurns           int     `yaml:"retry_turns"`
	RetryRestrictedTurns int     `yaml:"retry_restricted_turns"`
	MaxAttempts          int     `yaml:"max_attempts"`
	Scramble             string  `yaml:"scramble"`        // notation, e.g. "R U F'"
	ScrambleLength       int     `yaml:"scramble_length"` // 0 = turns
	Scorer               string  `yaml:"scorer"`          // layered-cubic|doubled-cubic|linear
	Workers              int     `yaml:"workers"`
}

// StorageConfig defines where runs are persisted
type StorageConfig struct {
	Path    string `yaml:"path"` // empty = default database path
	Disable bool   `yaml:"disable"`
}

// ResultsConfig defines the per-attempt results file
type ResultsConfig struct {
	Path      string `yaml:"path"`      // empty = no file
	Delimiter string `yaml:"delimiter"` // single character or "tab"
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := solver.DefaultConfig()
	return &Config{
		Solver: SolverConfig{
			Turns:                d.Turns,
			RestrictedTurns:      d.RestrictedTurns,
			Population:           d.PopulationSize,
			MutationRate:         d.MutationRate,
			StagnationLimit:      d.StagnationLimit,
			GenerationCap:        d.GenerationCap,
			RetryTurns:           d.RetryTurns,
			RetryRestrictedTurns: d.RetryRestrictedTurns,
			MaxAttempts:          d.MaxAttempts,
			Scorer:               d.Scorer,
			Workers:              d.Workers,
		},
		Results: ResultsConfig{Delimiter: ","},
		Logging: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills values a file may have blanked explicitly.
func applyDefaults(cfg *Config) {
	if cfg.Solver.Scorer == "" {
		cfg.Solver.Scorer = genetic.ScorerLayeredCubic
	}
	if cfg.Solver.Workers == 0 {
		cfg.Solver.Workers = 1
	}
	if cfg.Results.Delimiter == "" {
		cfg.Results.Delimiter = ","
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.SolverParams(); err != nil {
		return err
	}
	if _, err := c.Delimiter(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// SolverParams converts the solver section into solver.Config.
func (c *Config) SolverParams() (solver.Config, error) {
	s := c.Solver
	params := solver.Config{
		Turns:                s.Turns,
		RestrictedTurns:      s.RestrictedTurns,
		PopulationSize:       s.Population,
		MutationRate:         s.MutationRate,
		StagnationLimit:      s.StagnationLimit,
		GenerationCap:        s.GenerationCap,
		RetryTurns:           s.RetryTurns,
		RetryRestrictedTurns: s.RetryRestrictedTurns,
		MaxAttempts:          s.MaxAttempts,
		ScrambleLength:       s.ScrambleLength,
		Seed:                 c.Seed,
		Scorer:               s.Scorer,
		Workers:              s.Workers,
	}

	if s.Scramble != "" {
		scramble, err := pocketcube.ParseActions(s.Scramble)
		if err != nil {
			return solver.Config{}, fmt.Errorf("%w: solver.scramble: %v", ErrInvalid, err)
		}
		params.Scramble = scramble
	}

	if err := params.Validate(); err != nil {
		return solver.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return params, nil
}

// Delimiter returns the results delimiter as a rune.
func (c *Config) Delimiter() (rune, error) {
	d := c.Results.Delimiter
	if d == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(d)
	if size == 0 || size != len(d) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: results.delimiter %q", ErrInvalid, d)
	}
	return r, nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	return level, nil
}
