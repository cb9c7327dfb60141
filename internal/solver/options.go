package solver

import (
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/pocketcube"
)

// Option configures a Solver.
type Option func(*options)

type options struct {
	target    *pocketcube.CubeState
	rules     pocketcube.SequenceRules
	logger    logrus.FieldLogger
	observer  func(Progress)
	recorders []Recorder
}

func defaultOptions() *options {
	return &options{
		target: pocketcube.NewCubeState(),
		rules:  pocketcube.DefaultRules(),
		logger: logrus.StandardLogger(),
	}
}

// WithTarget solves towards target instead of the solved cube.
func WithTarget(target *pocketcube.CubeState) Option {
	return func(o *options) {
		if target != nil {
			o.target = target
		}
	}
}

// WithRules sets the sequence rules for scrambles and genomes.
func WithRules(r pocketcube.SequenceRules) Option {
	return func(o *options) {
		o.rules = r
	}
}

// WithLogger sets the logger. The engine logs through it as well.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets a callback that receives a Progress every generation.
// It runs on the solving goroutine.
func WithObserver(fn func(Progress)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithRecorder adds a recorder for attempt results. Recorders are called in
// the order they were added.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorders = append(o.recorders, r)
		}
	}
}
