package genetic

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SeamusWaldron/pocketcube"
)

// ErrUnknownScorer is returned by ScorerByName for unregistered names.
var ErrUnknownScorer = errors.New("genetic: unknown scorer")

// Match summarizes how a cube state compares with a target, slot by slot.
type Match struct {
	Correct  [pocketcube.NumSlots]bool
	Bottom   int  // correct pieces in layer one
	Top      int  // correct pieces in the top layer
	LayerOne bool // all four bottom pieces correct
	LayerTwo bool // all four top pieces correct
}

// NewMatch derives layer counts from per-slot correctness. Layers are
// identified by slot, never by color.
func NewMatch(correct [pocketcube.NumSlots]bool) Match {
	m := Match{Correct: correct}
	for slot, ok := range correct {
		if !ok {
			continue
		}
		if pocketcube.IsBottomSlot(slot) {
			m.Bottom++
		} else {
			m.Top++
		}
	}
	m.LayerOne = m.Bottom == len(pocketcube.BottomSlots)
	m.LayerTwo = m.Top == len(pocketcube.TopSlots)
	return m
}

// Total returns the number of correct pieces.
func (m Match) Total() int {
	return m.Bottom + m.Top
}

// PerfectMatch is the match of a state equal to its target.
func PerfectMatch() Match {
	var all [pocketcube.NumSlots]bool
	for i := range all {
		all[i] = true
	}
	return NewMatch(all)
}

// Scorer maps a match to a fitness value. Scorers must be pure: the engine
// may call them from several goroutines.
type Scorer func(m Match) int

// Scorer names accepted by ScorerByName.
const (
	ScorerLayeredCubic = "layered-cubic"
	ScorerDoubledCubic = "doubled-cubic"
	ScorerLinear       = "linear"
)

var scorers = map[string]Scorer{
	ScorerLayeredCubic: LayeredCubic,
	ScorerDoubledCubic: DoubledCubic,
	ScorerLinear:       Linear,
}

// ScorerByName looks up a registered scorer.
func ScorerByName(name string) (Scorer, error) {
	s, ok := scorers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
	}
	return s, nil
}

// ScorerNames returns the registered scorer names, sorted.
func ScorerNames() []string {
	names := make([]string, 0, len(scorers))
	for name := range scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LayeredCubic is the default scoring curve. Until layer one is complete
// the raw score is the number of correct bottom pieces. Completing layer one
// doubles the score and starts crediting top pieces; completing both layers
// triples it. The raw score is cubed.
//
//	bottom 0..3        -> 0, 1, 8, 27
//	layer one + top t  -> (2*(4+t))^3
//	solved             -> 24^3
func LayeredCubic(m Match) int {
	raw := m.Bottom
	if m.LayerOne {
		raw = 2 * (len(pocketcube.BottomSlots) + m.Top)
	}
	if m.LayerOne && m.LayerTwo {
		raw = 3 * pocketcube.NumSlots
	}
	return cubed(raw)
}

// DoubledCubic scans slots in index order and counts correct pieces until
// the first incorrect bottom piece. Top slots 0 and 1 come before any bottom
// slot, so they count even while layer one is unfinished. A complete layer
// one doubles the count, which is then cubed.
func DoubledCubic(m Match) int {
	raw := 0
	for slot, ok := range m.Correct {
		if !ok && pocketcube.IsBottomSlot(slot) {
			break
		}
		if ok {
			raw++
		}
	}
	if m.LayerOne {
		raw *= 2
	}
	return cubed(raw)
}

// Linear counts correct pieces with no layer bonus.
func Linear(m Match) int {
	return m.Total()
}

func cubed(n int) int {
	return n * n * n
}
