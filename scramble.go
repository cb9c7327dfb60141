package pocketcube

import "math/rand/v2"

// SequenceRules are the adjacency constraints that keep an action sequence
// from wasting turns. Scrambles and genomes are held to the same rules.
type SequenceRules struct {
	// ForbidLeadingPrime rejects a counter-clockwise first action.
	ForbidLeadingPrime bool
	// ForbidInverse rejects an action that undoes the previous one.
	ForbidInverse bool
	// ForbidTriple rejects a third identical action in a row.
	ForbidTriple bool
	// ForbidConsecutivePrime rejects two counter-clockwise actions in a row.
	ForbidConsecutivePrime bool
}

// DefaultRules enables every constraint.
func DefaultRules() SequenceRules {
	return SequenceRules{
		ForbidLeadingPrime:     true,
		ForbidInverse:          true,
		ForbidTriple:           true,
		ForbidConsecutivePrime: true,
	}
}

// Allows reports whether seq[i] is acceptable given the actions before it.
func (r SequenceRules) Allows(seq []Action, i int) bool {
	a := seq[i]
	if i == 0 {
		return !(r.ForbidLeadingPrime && a.IsPrime())
	}

	prev := seq[i-1]
	if r.ForbidInverse && AreOppositeActions(prev, a) {
		return false
	}
	if r.ForbidConsecutivePrime && prev.IsPrime() && a.IsPrime() {
		return false
	}
	if r.ForbidTriple && i >= 2 && a == prev && a == seq[i-2] {
		return false
	}
	return true
}

// AllowsAround reports whether seq[i] is acceptable and leaves the actions
// after it acceptable too. Used when replacing a gene in the middle of a
// sequence.
func (r SequenceRules) AllowsAround(seq []Action, i int) bool {
	for j := i; j < len(seq) && j <= i+2; j++ {
		if !r.Allows(seq, j) {
			return false
		}
	}
	return true
}

// Valid reports whether every action in seq satisfies the rules.
func (r SequenceRules) Valid(seq []Action) bool {
	for i := range seq {
		if !r.Allows(seq, i) {
			return false
		}
	}
	return true
}

// Generate draws length random actions that satisfy the rules.
func (r SequenceRules) Generate(length int, rng *rand.Rand) []Action {
	if length <= 0 {
		return []Action{}
	}

	seq := make([]Action, 0, length)
	for len(seq) < length {
		seq = append(seq, RandomAction(rng))
		if !r.Allows(seq, len(seq)-1) {
			seq = seq[:len(seq)-1]
		}
	}
	return seq
}

// GenerateScramble draws a scramble of length actions under DefaultRules.
func GenerateScramble(length int, rng *rand.Rand) []Action {
	return DefaultRules().Generate(length, rng)
}

// RandomAction draws one of the twelve actions uniformly.
func RandomAction(rng *rand.Rand) Action {
	return Action(rng.IntN(NumActions))
}
