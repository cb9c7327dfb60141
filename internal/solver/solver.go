// Package solver drives the genetic engine: it runs attempts, relaxes the
// restricted turns when progress stalls, restarts with a shorter genome and
// reports progress and results.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/pocketcube"
	"github.com/SeamusWaldron/pocketcube/internal/genetic"
)

// ErrSolutionMismatch is returned when a reported solution does not restore
// the target when replayed on a fresh cube.
var ErrSolutionMismatch = errors.New("solver: solution does not reach the target")

// Progress is a snapshot taken once per generation.
type Progress struct {
	Attempt         int
	Generation      int
	Turns           int
	RestrictedTurns int
	Restarts        int
	Stagnation      int

	BestFitness    int
	HighestFitness int
	PerfectScore   int
	AverageFitness float64
	LayerOne       bool
	LayerTwo       bool

	// Phase is the best cube's progress; HighestPhase never goes backwards
	// within an attempt.
	Phase        pocketcube.Phase
	HighestPhase pocketcube.Phase

	Scramble []pocketcube.Action
	Best     []pocketcube.Action
}

// AttemptResult summarizes one attempt.
type AttemptResult struct {
	Attempt         int
	Scramble        []pocketcube.Action
	Turns           int
	RestrictedTurns int
	Restarts        int
	HighestFitness  int
	PerfectScore    int
	Generations     int
	Duration        time.Duration
	Solved          bool
	Solution        []pocketcube.Action
}

// Recorder persists attempt results.
type Recorder interface {
	Record(AttemptResult) error
}

// Solver runs attempts until one solves its scramble.
type Solver struct {
	cfg       Config
	scorer    genetic.Scorer
	rules     pocketcube.SequenceRules
	target    *pocketcube.CubeState
	rng       *rand.Rand
	log       logrus.FieldLogger
	observer  func(Progress)
	recorders []Recorder
}

// New validates cfg and creates a solver.
func New(cfg Config, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scorer, err := genetic.ScorerByName(cfg.Scorer)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Solver{
		cfg:       cfg,
		scorer:    scorer,
		rules:     o.rules,
		target:    o.target.Clone(),
		rng:       rand.New(rand.NewPCG(seed, seed>>1|1)),
		log:       o.logger,
		observer:  o.observer,
		recorders: o.recorders,
	}, nil
}

// Config returns the validated configuration.
func (s *Solver) Config() Config { return s.cfg }

// Run executes attempts until one is solved, MaxAttempts is reached or ctx
// is cancelled. The results of every finished attempt are returned, also
// alongside an error.
func (s *Solver) Run(ctx context.Context) ([]AttemptResult, error) {
	var results []AttemptResult

	for attempt := 1; s.cfg.MaxAttempts == 0 || attempt <= s.cfg.MaxAttempts; attempt++ {
		result, err := s.RunAttempt(ctx, attempt, s.nextScramble())
		if err != nil {
			return results, err
		}
		results = append(results, result)

		for _, r := range s.recorders {
			if err := r.Record(result); err != nil {
				return results, fmt.Errorf("failed to record attempt %d: %w", attempt, err)
			}
		}

		if result.Solved {
			s.log.WithFields(logrus.Fields{
				"attempt":     attempt,
				"generations": result.Generations,
				"solution":    pocketcube.FormatActions(result.Solution),
			}).Info("cube solved")
			break
		}

		s.log.WithFields(logrus.Fields{
			"attempt":         attempt,
			"highest_fitness": result.HighestFitness,
		}).Info("attempt failed")
	}

	return results, nil
}

func (s *Solver) nextScramble() []pocketcube.Action {
	if s.cfg.Scramble != nil {
		return append([]pocketcube.Action(nil), s.cfg.Scramble...)
	}
	n := s.cfg.ScrambleLength
	if n == 0 {
		n = s.cfg.Turns
	}
	return s.rules.Generate(n, s.rng)
}

// RunAttempt searches for a solution to scramble. An attempt that hits the
// generation cap is returned unsolved without an error; a cancelled context
// returns ctx.Err().
func (s *Solver) RunAttempt(ctx context.Context, attempt int, scramble []pocketcube.Action) (AttemptResult, error) {
	turns, restricted := s.cfg.Turns, s.cfg.RestrictedTurns
	engine := s.newEngine(turns, restricted, scramble)
	defer func() { engine.Close() }()

	log := s.log.WithField("attempt", attempt)
	log.WithFields(logrus.Fields{
		"scramble":      pocketcube.FormatActions(scramble),
		"perfect_score": engine.PerfectScore(),
	}).Info("attempt started")

	result := AttemptResult{
		Attempt:      attempt,
		Scramble:     append([]pocketcube.Action(nil), scramble...),
		PerfectScore: engine.PerfectScore(),
	}
	start := time.Now()

	var prevCube *pocketcube.CubeState
	stagnation := 0
	highestPhase := pocketcube.PhaseScrambled

	for {
		best := engine.GetBest()
		cube := best.CubeState()
		if best.Fitness() > result.HighestFitness {
			result.HighestFitness = best.Fitness()
		}

		if prevCube != nil && cube.IsEqualTo(prevCube) {
			stagnation++
		} else {
			stagnation = 0
		}
		prevCube = cube

		phase := cube.Phase(s.target)
		if phase > highestPhase {
			highestPhase = phase
			log.WithFields(logrus.Fields{
				"generation": result.Generations,
				"phase":      phase.String(),
			}).Info("phase reached")
		}

		s.notify(Progress{
			Attempt:         attempt,
			Generation:      result.Generations,
			Turns:           turns,
			RestrictedTurns: restricted,
			Restarts:        result.Restarts,
			Stagnation:      stagnation,
			BestFitness:     best.Fitness(),
			HighestFitness:  result.HighestFitness,
			PerfectScore:    engine.PerfectScore(),
			AverageFitness:  engine.AverageFitness(),
			LayerOne:        best.LayerOneSolved(),
			LayerTwo:        best.LayerTwoSolved(),
			Phase:           phase,
			HighestPhase:    highestPhase,
			Scramble:        result.Scramble,
			Best:            best.ActiveGenes(),
		})

		if engine.IsFinished() {
			result.Solution = best.ActiveGenes()
			result.Solved = true
			break
		}
		if result.Generations >= s.cfg.GenerationCap {
			log.WithField("generations", result.Generations).Info("generation cap reached")
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if stagnation >= s.cfg.StagnationLimit {
			stagnation = 0
			prevCube = nil

			if restricted == 0 {
				engine.Close()
				turns, restricted = s.cfg.RetryTurns, s.cfg.RetryRestrictedTurns
				engine = s.newEngine(turns, restricted, scramble)
				result.Restarts++
				log.WithFields(logrus.Fields{
					"generation": result.Generations,
					"turns":      turns,
					"restricted": restricted,
				}).Info("stagnated, restarting with a shorter genome")
			} else {
				restricted--
				engine.AdjustRestrictedTurns(restricted)
				log.WithFields(logrus.Fields{
					"generation": result.Generations,
					"restricted": restricted,
				}).Info("stagnated, unrestricting one turn")
			}
		}

		engine.NaturalSelection()
		engine.Generate()
		engine.CalculateFitness()
		result.Generations++
	}

	result.Turns = turns
	result.RestrictedTurns = restricted
	result.Duration = time.Since(start)

	if result.Solved && !s.Verify(scramble, result.Solution) {
		return result, fmt.Errorf("%w: %s after %s", ErrSolutionMismatch,
			pocketcube.FormatActions(result.Solution), pocketcube.FormatActions(scramble))
	}
	return result, nil
}

// Verify replays scramble and solution on a fresh cube and compares the
// result with the target.
func (s *Solver) Verify(scramble, solution []pocketcube.Action) bool {
	cube := pocketcube.NewCubeState()
	cube.Scramble(scramble)
	cube.ApplyAll(solution)
	return cube.IsSolved(s.target)
}

func (s *Solver) newEngine(turns, restricted int, scramble []pocketcube.Action) *genetic.Engine {
	return genetic.NewGeneticAlgorithm(turns, s.target, s.cfg.MutationRate, s.cfg.PopulationSize, s.rng,
		genetic.WithScramble(scramble),
		genetic.WithRestrictedTurns(restricted),
		genetic.WithScorer(s.scorer),
		genetic.WithRules(s.rules),
		genetic.WithWorkers(s.cfg.Workers),
		genetic.WithLogger(s.log),
	)
}

func (s *Solver) notify(p Progress) {
	s.log.WithFields(logrus.Fields{
		"attempt":    p.Attempt,
		"generation": p.Generation,
		"best":       p.BestFitness,
		"average":    p.AverageFitness,
		"restricted": p.RestrictedTurns,
	}).Debug("generation")

	if s.observer != nil {
		s.observer(p)
	}
}
