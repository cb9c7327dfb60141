package genetic

import (
	"math"
	"math/rand/v2"

	"github.com/alitto/pond"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/pocketcube"
)

// selectionCopies is the number of mating pool entries given to a
// chromosome whose fitness equals the population maximum.
const selectionCopies = 100

// minPopulation covers the two elitism slots.
const minPopulation = 2

// Engine owns a population of chromosomes solving one scramble. It is not
// safe for concurrent use; WithWorkers only parallelizes scoring inside
// CalculateFitness.
type Engine struct {
	turns        int
	restricted   int
	mutationRate float64
	target       *pocketcube.CubeState
	scramble     []pocketcube.Action
	scorer       Scorer
	rules        pocketcube.SequenceRules
	rng          *rand.Rand
	log          logrus.FieldLogger

	population   []*DNA
	matingPool   []*DNA
	perfectScore int
	generation   int
	finished     bool

	workers int
	pool    *pond.WorkerPool
}

// NewGeneticAlgorithm creates an engine with populationSize random
// chromosomes of turns genes each and scores them against target. Unless
// WithScramble is given, a scramble is drawn from rng. A nil rng is replaced
// by a generator with a fixed seed.
func NewGeneticAlgorithm(turns int, target *pocketcube.CubeState, mutationRate float64, populationSize int, rng *rand.Rand, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	if turns < 0 {
		turns = 0
	}
	if populationSize < minPopulation {
		populationSize = minPopulation
	}
	if target == nil {
		target = pocketcube.NewCubeState()
	}

	e := &Engine{
		turns:        turns,
		restricted:   clamp(cfg.restricted, 0, turns),
		mutationRate: mutationRate,
		target:       target.Clone(),
		scorer:       cfg.scorer,
		rules:        cfg.rules,
		rng:          rng,
		log:          cfg.logger,
		workers:      cfg.workers,
	}

	switch {
	case cfg.scramble != nil:
		e.scramble = cfg.scramble
	case cfg.scrambleLength >= 0:
		e.scramble = e.rules.Generate(cfg.scrambleLength, rng)
	default:
		e.scramble = e.rules.Generate(turns, rng)
	}

	e.population = make([]*DNA, populationSize)
	for i := range e.population {
		e.population[i] = NewRandomDNA(e.turns, e.restricted, e.scramble, e.rules, rng)
	}

	// A chromosome whose cube equals the target scores PerfectMatch,
	// regardless of its genes.
	e.perfectScore = e.scorer(PerfectMatch())

	e.CalculateFitness()

	e.log.WithFields(logrus.Fields{
		"turns":      e.turns,
		"restricted": e.restricted,
		"population": populationSize,
		"scramble":   pocketcube.FormatActions(e.scramble),
	}).Debug("genetic algorithm initialized")

	return e
}

// CalculateFitness scores every chromosome against the target.
func (e *Engine) CalculateFitness() {
	if e.workers < 2 || len(e.population) < 2 {
		for _, d := range e.population {
			d.CalculateFitness(e.target, e.scorer)
		}
		return
	}

	if e.pool == nil {
		e.pool = pond.New(e.workers, len(e.population))
	}
	group := e.pool.Group()
	for _, d := range e.population {
		d := d
		group.Submit(func() {
			d.CalculateFitness(e.target, e.scorer)
		})
	}
	group.Wait()
}

// NaturalSelection rebuilds the mating pool. Each chromosome is added
// round(100 * fitness / maxFitness) times; zero-fitness chromosomes are left
// out, so the pool is empty when the whole population scores zero.
func (e *Engine) NaturalSelection() {
	e.matingPool = e.matingPool[:0]

	maxFitness := 0
	for _, d := range e.population {
		if d.fitness > maxFitness {
			maxFitness = d.fitness
		}
	}
	if maxFitness == 0 {
		return
	}

	for _, d := range e.population {
		if d.fitness <= 0 {
			continue
		}
		n := int(math.Round(selectionCopies * float64(d.fitness) / float64(maxFitness)))
		for i := 0; i < n; i++ {
			e.matingPool = append(e.matingPool, d)
		}
	}
}

// Generate replaces the population. Slot 0 holds the current best, slot 1 a
// mutated copy of it, and every other slot a mutated crossover of two
// parents drawn uniformly from the mating pool. With an empty pool those
// slots get fresh random chromosomes instead. Slots 0 and 1 are scored here;
// the rest must be scored with CalculateFitness before the next
// NaturalSelection.
func (e *Engine) Generate() {
	best := e.population[e.bestIndex()]
	next := make([]*DNA, len(e.population))

	next[0] = best.Clone()

	mutated := NewDNA(e.turns, e.restricted, e.scramble, best.genes, e.target, e.scorer)
	mutated.Mutate(e.mutationRate, e.rules, e.rng)
	next[1] = mutated

	for i := minPopulation; i < len(next); i++ {
		if len(e.matingPool) == 0 {
			next[i] = NewRandomDNA(e.turns, e.restricted, e.scramble, e.rules, e.rng)
			continue
		}

		partnerA := e.matingPool[e.rng.IntN(len(e.matingPool))]
		partnerB := e.matingPool[e.rng.IntN(len(e.matingPool))]
		child := partnerA.Crossover(partnerB, e.rules)
		child.Mutate(e.mutationRate, e.rules, e.rng)
		next[i] = child
	}

	e.population = next
	e.population[0].CalculateFitness(e.target, e.scorer)
	e.population[1].CalculateFitness(e.target, e.scorer)

	e.generation++
}

// bestIndex returns the first chromosome with the highest fitness.
func (e *Engine) bestIndex() int {
	bestIndex := 0
	record := e.population[0].fitness
	for i, d := range e.population[1:] {
		if d.fitness > record {
			bestIndex = i + 1
			record = d.fitness
		}
	}
	return bestIndex
}

// GetBest returns a copy of the fittest chromosome and marks the engine
// finished when it reaches the perfect score.
func (e *Engine) GetBest() *DNA {
	best := e.population[e.bestIndex()]
	if best.evaluated && best.fitness == e.perfectScore {
		e.finished = true
	}
	return best.Clone()
}

// AdjustRestrictedTurns sets the restricted turns of every chromosome and of
// chromosomes created later, then rescores the population.
func (e *Engine) AdjustRestrictedTurns(n int) {
	e.restricted = clamp(n, 0, e.turns)
	for _, d := range e.population {
		d.SetRestrictedTurns(e.restricted)
	}
	e.CalculateFitness()

	e.log.WithFields(logrus.Fields{
		"generation": e.generation,
		"restricted": e.restricted,
	}).Debug("restricted turns adjusted")
}

// Close releases the scoring worker pool, if one was started.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.StopAndWait()
		e.pool = nil
	}
}

// PerfectScore returns the fitness of a chromosome whose cube equals the target.
func (e *Engine) PerfectScore() int { return e.perfectScore }

// IsFinished reports whether GetBest has seen a perfect chromosome.
func (e *Engine) IsFinished() bool { return e.finished }

// Scramble returns a copy of the scramble being solved.
func (e *Engine) Scramble() []pocketcube.Action {
	return append([]pocketcube.Action(nil), e.scramble...)
}

// Target returns a copy of the target state.
func (e *Engine) Target() *pocketcube.CubeState { return e.target.Clone() }

// Turns returns the genome length.
func (e *Engine) Turns() int { return e.turns }

// RestrictedTurns returns the current restricted turns.
func (e *Engine) RestrictedTurns() int { return e.restricted }

// Generation returns the number of completed Generate calls.
func (e *Engine) Generation() int { return e.generation }

// MatingPoolSize returns the number of entries in the mating pool.
func (e *Engine) MatingPoolSize() int { return len(e.matingPool) }

// PopulationSize returns the number of chromosomes.
func (e *Engine) PopulationSize() int { return len(e.population) }

// Population returns copies of every chromosome.
func (e *Engine) Population() []*DNA {
	out := make([]*DNA, len(e.population))
	for i, d := range e.population {
		out[i] = d.Clone()
	}
	return out
}

// AverageFitness returns the mean fitness of the population.
func (e *Engine) AverageFitness() float64 {
	total := 0
	for _, d := range e.population {
		total += d.fitness
	}
	return float64(total) / float64(len(e.population))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
