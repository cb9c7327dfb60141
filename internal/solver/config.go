package solver

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/genetic"
)

// ErrInvalidConfig is returned by Config.Validate and New.
var ErrInvalidConfig = errors.New("solver: invalid configuration")

// Config holds the parameters of a solving run.
type Config struct {
	Turns           int
	RestrictedTurns int
	PopulationSize  int
	MutationRate    float64

	// StagnationLimit is the number of generations with an unchanged best
	// cube before the curriculum steps.
	StagnationLimit int
	// GenerationCap ends an attempt unsolved.
	GenerationCap int

	// RetryTurns and RetryRestrictedTurns are used when the engine is
	// restarted after stagnating with nothing left to unrestrict.
	RetryTurns           int
	RetryRestrictedTurns int

	// MaxAttempts bounds the number of attempts. Zero means keep trying
	// until one succeeds or the context is cancelled.
	MaxAttempts int

	// Scramble, when set, is solved by every attempt. Otherwise each attempt
	// draws a scramble of ScrambleLength actions (Turns when zero).
	Scramble       []pocketcube.Action
	ScrambleLength int

	Seed    uint64
	Scorer  string
	Workers int
}

// DefaultConfig returns the parameters the solver was tuned with.
func DefaultConfig() Config {
	return Config{
		Turns:                50,
		RestrictedTurns:      40,
		PopulationSize:       1000,
		MutationRate:         0.2,
		StagnationLimit:      500,
		GenerationCap:        3000,
		RetryTurns:           25,
		RetryRestrictedTurns: 10,
		Scorer:               genetic.ScorerLayeredCubic,
		Workers:              1,
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	switch {
	case c.Turns < 1:
		return fmt.Errorf("%w: turns must be positive, got %d", ErrInvalidConfig, c.Turns)
	case c.RestrictedTurns < 0 || c.RestrictedTurns > c.Turns:
		return fmt.Errorf("%w: restricted turns must be in [0, %d], got %d", ErrInvalidConfig, c.Turns, c.RestrictedTurns)
	case c.PopulationSize < 2:
		return fmt.Errorf("%w: population size must be at least 2, got %d", ErrInvalidConfig, c.PopulationSize)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate must be in [0, 1], got %g", ErrInvalidConfig, c.MutationRate)
	case c.StagnationLimit < 1:
		return fmt.Errorf("%w: stagnation limit must be positive, got %d", ErrInvalidConfig, c.StagnationLimit)
	case c.GenerationCap < 1:
		return fmt.Errorf("%w: generation cap must be positive, got %d", ErrInvalidConfig, c.GenerationCap)
	case c.RetryTurns < 1:
		return fmt.Errorf("%w: retry turns must be positive, got %d", ErrInvalidConfig, c.RetryTurns)
	case c.RetryRestrictedTurns < 0 || c.RetryRestrictedTurns > c.RetryTurns:
		return fmt.Errorf("%w: retry restricted turns must be in [0, %d], got %d", ErrInvalidConfig, c.RetryTurns, c.RetryRestrictedTurns)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidConfig, c.MaxAttempts)
	case c.ScrambleLength < 0:
		return fmt.Errorf("%w: scramble length must not be negative, got %d", ErrInvalidConfig, c.ScrambleLength)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}

	if _, err := genetic.ScorerByName(c.Scorer); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
