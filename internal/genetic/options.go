package genetic

import (
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/pocketcube"
)

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	scramble       []pocketcube.Action
	scrambleLength int
	restricted     int
	scorer         Scorer
	rules          pocketcube.SequenceRules
	workers        int
	logger         logrus.FieldLogger
}

func defaultConfig() *config {
	return &config{
		scrambleLength: -1,
		scorer:         LayeredCubic,
		rules:          pocketcube.DefaultRules(),
		workers:        1,
		logger:         logrus.StandardLogger(),
	}
}

// WithScramble solves the given scramble instead of generating one.
func WithScramble(scramble []pocketcube.Action) Option {
	return func(c *config) {
		c.scramble = append([]pocketcube.Action{}, scramble...)
	}
}

// WithScrambleLength sets the length of the generated scramble.
// By default it equals the genome length.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		c.scrambleLength = n
	}
}

// WithRestrictedTurns sets the initial number of trailing genes left out of
// the simulation.
func WithRestrictedTurns(n int) Option {
	return func(c *config) {
		c.restricted = n
	}
}

// WithScorer replaces the default LayeredCubic scoring curve.
func WithScorer(s Scorer) Option {
	return func(c *config) {
		if s != nil {
			c.scorer = s
		}
	}
}

// WithRules replaces the default sequence rules for scrambles, genomes,
// crossover and mutation.
func WithRules(r pocketcube.SequenceRules) Option {
	return func(c *config) {
		c.rules = r
	}
}

// WithWorkers scores the population on n goroutines. Values below 2 keep
// scoring on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
