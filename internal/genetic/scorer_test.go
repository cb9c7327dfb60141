package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/pocketcube"
)

// matchWith marks the first bottom and top slots as correct.
func matchWith(bottom, top int) Match {
	var correct [pocketcube.NumSlots]bool
	for i := 0; i < bottom; i++ {
		correct[pocketcube.BottomSlots[i]] = true
	}
	for i := 0; i < top; i++ {
		correct[pocketcube.TopSlots[i]] = true
	}
	return NewMatch(correct)
}

func TestNewMatchCountsBySlot(t *testing.T) {
	m := matchWith(3, 2)
	assert.Equal(t, 3, m.Bottom)
	assert.Equal(t, 2, m.Top)
	assert.False(t, m.LayerOne)
	assert.False(t, m.LayerTwo)
	assert.Equal(t, 5, m.Total())

	m = matchWith(4, 4)
	assert.True(t, m.LayerOne)
	assert.True(t, m.LayerTwo)
	assert.Equal(t, PerfectMatch(), m)
}

func TestLayeredCubicBottomLayerProgress(t *testing.T) {
	// Top pieces earn nothing until layer one is complete.
	var prev int
	for bottom := 0; bottom <= 3; bottom++ {
		score := LayeredCubic(matchWith(bottom, 2))
		assert.Equal(t, bottom*bottom*bottom, score, "bottom=%d", bottom)
		if bottom > 0 {
			assert.Greater(t, score, prev, "score should grow with bottom pieces")
		}
		prev = score
	}

	// Completing layer one jumps well past the three-piece score.
	layerOne := LayeredCubic(matchWith(4, 0))
	assert.Equal(t, 512, layerOne)
	assert.Greater(t, layerOne-prev, prev, "layer one bonus should be a discontinuous jump")
}

func TestLayeredCubicTopLayerProgress(t *testing.T) {
	prev := LayeredCubic(matchWith(4, 0))
	for top := 1; top <= 3; top++ {
		score := LayeredCubic(matchWith(4, top))
		assert.Greater(t, score, prev, "top=%d", top)
		prev = score
	}
	assert.Equal(t, 24*24*24, LayeredCubic(PerfectMatch()))
	assert.Greater(t, LayeredCubic(PerfectMatch()), prev)
}

func TestDoubledCubic(t *testing.T) {
	slots := func(correct ...int) Match {
		var c [pocketcube.NumSlots]bool
		for _, slot := range correct {
			c[slot] = true
		}
		return NewMatch(c)
	}

	tests := []struct {
		name  string
		match Match
		want  int
	}{
		{"nothing correct", slots(), 0},
		{"leading top slots count before layer one", slots(0, 1), 8},
		{"counting stops at first wrong bottom slot", slots(0, 1, 3, 4, 5), 8},
		{"wrong last bottom slot keeps earlier pieces", matchWith(3, 4), 7 * 7 * 7},
		{"layer one only", matchWith(4, 0), 512},
		{"layer one plus two top", slots(0, 1, 2, 3, 6, 7), 12 * 12 * 12},
		{"solved", PerfectMatch(), 16 * 16 * 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DoubledCubic(tt.match))
		})
	}
}

func TestLinear(t *testing.T) {
	assert.Equal(t, 0, Linear(matchWith(0, 0)))
	assert.Equal(t, 5, Linear(matchWith(1, 4)))
	assert.Equal(t, 8, Linear(PerfectMatch()))
}

func TestScorerByName(t *testing.T) {
	for _, name := range ScorerNames() {
		s, err := ScorerByName(name)
		require.NoError(t, err, name)
		require.NotNil(t, s)
	}

	_, err := ScorerByName("quadratic")
	assert.ErrorIs(t, err, ErrUnknownScorer)
	assert.Equal(t, []string{ScorerDoubledCubic, ScorerLayeredCubic, ScorerLinear}, ScorerNames())
}
