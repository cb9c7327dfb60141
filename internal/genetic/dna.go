// Package genetic implements the genetic algorithm that searches for an
// action sequence restoring a scrambled cube to a target state.
package genetic

import (
	"math/rand/v2"

	"github.com/SeamusWaldron/pocketcube"
)

// maxResample bounds the attempts to find a replacement gene that keeps the
// genome valid. When every attempt fails the gene is left unchanged.
const maxResample = 2 * pocketcube.NumActions

// DNA is a chromosome: a candidate solution of turns genes, replayed after
// the original scramble. Only the first turns-restricted genes are
// simulated; the rest wait until the restriction is relaxed.
type DNA struct {
	turns      int
	restricted int
	scramble   []pocketcube.Action // shared, never modified
	genes      []pocketcube.Action
	cube       *pocketcube.CubeState

	fitness   int
	layerOne  bool
	layerTwo  bool
	evaluated bool
}

// NewRandomDNA creates a chromosome with turns random genes drawn under rules.
// The result is unevaluated.
func NewRandomDNA(turns, restricted int, scramble []pocketcube.Action, rules pocketcube.SequenceRules, rng *rand.Rand) *DNA {
	d := &DNA{
		turns:      turns,
		restricted: clamp(restricted, 0, turns),
		scramble:   scramble,
		genes:      rules.Generate(turns, rng),
	}
	d.simulate()
	return d
}

// NewDNA creates a chromosome from the given genes and scores it against
// target.
func NewDNA(turns, restricted int, scramble, genes []pocketcube.Action, target *pocketcube.CubeState, scorer Scorer) *DNA {
	d := &DNA{
		turns:      turns,
		restricted: clamp(restricted, 0, turns),
		scramble:   scramble,
		genes:      append([]pocketcube.Action(nil), genes...),
	}
	d.simulate()
	d.CalculateFitness(target, scorer)
	return d
}

// activeLength is the number of simulated genes, clamped to the genome.
func (d *DNA) activeLength() int {
	n := d.turns - d.restricted
	if n < 0 {
		return 0
	}
	if n > len(d.genes) {
		return len(d.genes)
	}
	return n
}

// simulate rebuilds the cube from scratch and drops the previous score.
func (d *DNA) simulate() {
	if d.cube == nil {
		d.cube = pocketcube.NewCubeState()
	}
	d.cube.Scramble(d.scramble)
	d.cube.ApplyAll(d.genes[:d.activeLength()])

	d.fitness = 0
	d.layerOne = false
	d.layerTwo = false
	d.evaluated = false
}

// CalculateFitness scores the simulated cube against target.
func (d *DNA) CalculateFitness(target *pocketcube.CubeState, scorer Scorer) {
	m := NewMatch(d.cube.CountMatchingPieces(target))
	d.fitness = scorer(m)
	d.layerOne = m.LayerOne
	d.layerTwo = m.LayerTwo
	d.evaluated = true
}

// Crossover builds an unevaluated child from the first half of d and the
// second half of partner. The cut starts at the midpoint and moves outward
// until the junction satisfies rules; cutting at either end reproduces a
// parent, so a valid cut always exists for valid parents.
func (d *DNA) Crossover(partner *DNA, rules pocketcube.SequenceRules) *DNA {
	genes := make([]pocketcube.Action, len(d.genes))
	cut := crossoverCut(d.genes, partner.genes, rules, genes)
	splice(d.genes, partner.genes, cut, genes)

	child := &DNA{
		turns:      d.turns,
		restricted: d.restricted,
		scramble:   d.scramble,
		genes:      genes,
	}
	child.simulate()
	return child
}

// splice writes a[:cut] followed by b[cut:] into dst. Positions b does not
// cover are taken from a.
func splice(a, b []pocketcube.Action, cut int, dst []pocketcube.Action) {
	copy(dst, a)
	if cut < len(b) {
		copy(dst[cut:], b[cut:])
	}
}

// crossoverCut picks the cut point nearest the midpoint whose junction is
// valid. buf is scratch space of len(a).
func crossoverCut(a, b []pocketcube.Action, rules pocketcube.SequenceRules, buf []pocketcube.Action) int {
	n := len(a)
	mid := n / 2
	for off := 0; off <= n; off++ {
		for _, cut := range [2]int{mid + off, mid - off} {
			if cut < 0 || cut > n {
				continue
			}
			splice(a, b, cut, buf)
			if junctionValid(buf, cut, rules) {
				return cut
			}
		}
	}
	return n
}

// junctionValid checks the positions whose left context changed at cut.
func junctionValid(seq []pocketcube.Action, cut int, rules pocketcube.SequenceRules) bool {
	for i := cut; i < len(seq) && i <= cut+1; i++ {
		if !rules.Allows(seq, i) {
			return false
		}
	}
	return true
}

// Mutate resamples each simulated gene with probability rate. A new gene is
// kept only if the genome still satisfies rules around it. When layer one is
// already solved mutation starts halfway through the simulated prefix, and
// when both layers are solved the prefix is left alone. The cube is rebuilt
// afterwards and the chromosome becomes unevaluated.
func (d *DNA) Mutate(rate float64, rules pocketcube.SequenceRules, rng *rand.Rand) {
	active := d.activeLength()

	for i := d.mutationStart(active); i < active; i++ {
		if rng.Float64() >= rate {
			continue
		}
		d.resample(i, rules, rng)
	}

	d.simulate()
}

func (d *DNA) mutationStart(active int) int {
	switch {
	case d.layerOne && d.layerTwo:
		return active
	case d.layerOne:
		return active / 2
	default:
		return 0
	}
}

func (d *DNA) resample(i int, rules pocketcube.SequenceRules, rng *rand.Rand) {
	old := d.genes[i]
	for attempt := 0; attempt < maxResample; attempt++ {
		d.genes[i] = pocketcube.RandomAction(rng)
		if rules.AllowsAround(d.genes, i) {
			return
		}
	}
	d.genes[i] = old
}

// SetRestrictedTurns changes how many trailing genes are left out of the
// simulation. The value is clamped to [0, turns] and the cube is rebuilt.
func (d *DNA) SetRestrictedTurns(n int) {
	d.restricted = clamp(n, 0, d.turns)
	d.simulate()
}

// Clone returns a deep copy. The scramble is shared.
func (d *DNA) Clone() *DNA {
	clone := *d
	clone.genes = append([]pocketcube.Action(nil), d.genes...)
	clone.cube = d.cube.Clone()
	return &clone
}

// Fitness returns the last computed score.
func (d *DNA) Fitness() int { return d.fitness }

// Genes returns a copy of the whole genome.
func (d *DNA) Genes() []pocketcube.Action {
	return append([]pocketcube.Action(nil), d.genes...)
}

// ActiveGenes returns a copy of the simulated prefix.
func (d *DNA) ActiveGenes() []pocketcube.Action {
	return append([]pocketcube.Action(nil), d.genes[:d.activeLength()]...)
}

// Turns returns the genome length budget.
func (d *DNA) Turns() int { return d.turns }

// RestrictedTurns returns the number of trailing genes left out.
func (d *DNA) RestrictedTurns() int { return d.restricted }

// Scramble returns a copy of the scramble replayed before the genes.
func (d *DNA) Scramble() []pocketcube.Action {
	return append([]pocketcube.Action(nil), d.scramble...)
}

// CubeState returns a copy of the simulated cube.
func (d *DNA) CubeState() *pocketcube.CubeState { return d.cube.Clone() }

// LayerOneSolved reports whether the last evaluation found layer one complete.
func (d *DNA) LayerOneSolved() bool { return d.layerOne }

// LayerTwoSolved reports whether the last evaluation found the top layer complete.
func (d *DNA) LayerTwoSolved() bool { return d.layerTwo }

// Evaluated reports whether the fitness reflects the current genes.
func (d *DNA) Evaluated() bool { return d.evaluated }
