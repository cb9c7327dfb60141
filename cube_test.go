package pocketcube

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func TestNewCubeStateIsSolved(t *testing.T) {
	c := NewCubeState()
	if !c.IsSolved(NewCubeState()) {
		t.Error("New cube should be solved")
	}
}

func TestSolvedLayout(t *testing.T) {
	c := NewCubeState()

	// left top front
	p := c.Slot(0, 0, 0)
	if p[Left] != Orange || p[Front] != Green || p[Top] != White {
		t.Errorf("slot 0 = %v, want orange/green/white", p)
	}
	if p[Right] != ColorNone || p[Back] != ColorNone || p[Bottom] != ColorNone {
		t.Errorf("slot 0 = %v, hidden fields should be none", p)
	}

	// right bottom back
	p = c.Slot(1, 1, 1)
	if p[Right] != Red || p[Back] != Blue || p[Bottom] != Yellow {
		t.Errorf("slot 7 = %v, want red/blue/yellow", p)
	}

	for _, slot := range BottomSlots {
		if !IsBottomSlot(slot) {
			t.Errorf("slot %d should be in the bottom layer", slot)
		}
		if c.Piece(slot)[Bottom] != Yellow {
			t.Errorf("bottom slot %d should show yellow on the bottom", slot)
		}
	}
	for _, slot := range TopSlots {
		if IsBottomSlot(slot) {
			t.Errorf("slot %d should be in the top layer", slot)
		}
	}
}

func TestSingleActionBreaksSolved(t *testing.T) {
	for _, a := range AllActions {
		c := NewCubeState()
		c.Apply(a)
		if c.IsSolved(NewCubeState()) {
			t.Errorf("cube should not be solved after %v", a)
		}
	}
}

func TestFourQuarterTurns_ReturnToStart(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	start := NewCubeState()
	start.Scramble(GenerateScramble(12, rng))

	for _, a := range AllActions {
		c := start.Clone()
		for i := 0; i < 4; i++ {
			c.Apply(a)
		}
		if !c.IsEqualTo(start) {
			t.Errorf("%v x 4 should return to the starting state", a)
			t.Log(c.String())
		}
	}
}

func TestActionThenInverse_ReturnsToStart(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	start := NewCubeState()
	start.Scramble(GenerateScramble(10, rng))

	for _, a := range AllActions {
		c := start.Clone()
		c.Apply(a)
		c.Apply(a.Inverse())
		if !c.IsEqualTo(start) {
			t.Errorf("%v %v should return to the starting state", a, a.Inverse())
		}
	}
}

func TestCCWEqualsThreeCW(t *testing.T) {
	for f := Face(0); f < NumFaces; f++ {
		a := NewCubeState()
		a.ApplyFace(f, CCW)

		b := NewCubeState()
		for i := 0; i < 3; i++ {
			b.ApplyFace(f, CW)
		}

		if !a.IsEqualTo(b) {
			t.Errorf("%v' should equal %v %v %v", f, f, f, f)
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	c := NewCubeState()
	for i := 0; i < 6; i++ {
		c.ApplyAll(SexyMove)
	}
	if !c.IsSolved(NewCubeState()) {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestRightTurnGeometry(t *testing.T) {
	c := NewCubeState()
	c.Apply(R)

	// R carries the right-top-front corner to right-top-back; its front
	// sticker goes up and its top sticker goes to the back.
	p := c.Slot(1, 0, 1)
	if p[Right] != Red || p[Top] != Green || p[Back] != White {
		t.Errorf("right top back after R = %v", p)
	}

	// The left layer is untouched.
	solved := NewCubeState()
	for _, slot := range []int{0, 1, 2, 3} {
		if c.Piece(slot) != solved.Piece(slot) {
			t.Errorf("slot %d changed by R", slot)
		}
	}
}

func TestUpTurnLeavesBottomLayer(t *testing.T) {
	c := NewCubeState()
	c.Apply(U)
	c.Apply(UPrime)
	c.Apply(U)

	solved := NewCubeState()
	matches := c.CountMatchingPieces(solved)
	for _, slot := range BottomSlots {
		if !matches[slot] {
			t.Errorf("bottom slot %d should be unaffected by U", slot)
		}
	}
	for _, slot := range TopSlots {
		if matches[slot] {
			t.Errorf("top slot %d should have moved", slot)
		}
	}
}

func TestActionsPreservePieces(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	c := NewCubeState()
	c.Scramble(GenerateScramble(40, rng))

	key := func(p Piece) string {
		colors := p.Colors()
		sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
		b := make([]byte, len(colors))
		for i, col := range colors {
			b[i] = byte('0' + col)
		}
		return string(b)
	}

	want := map[string]int{}
	for _, p := range NewCubeState().Pieces() {
		want[key(p)]++
	}
	got := map[string]int{}
	for _, p := range c.Pieces() {
		if n := len(p.Colors()); n != 3 {
			t.Fatalf("piece %v has %d colors, want 3", p, n)
		}
		got[key(p)]++
	}

	for k, n := range want {
		if got[k] != n {
			t.Errorf("piece %s appears %d times, want %d", k, got[k], n)
		}
	}
}

func TestStickerFlipBreaksEquality(t *testing.T) {
	solved := NewCubeState()

	for slot := 0; slot < NumSlots; slot++ {
		for d := Direction(0); d < NumDirections; d++ {
			c := NewCubeState()
			p := c.Piece(slot)
			if p[d] == Red {
				p[d] = Orange
			} else {
				p[d] = Red
			}
			c.SetPiece(slot, p)

			if c.IsSolved(solved) {
				t.Errorf("flipping slot %d %v should break equality", slot, d)
			}
		}
	}
}

func TestScrambleRecordsHistory(t *testing.T) {
	seq := []Action{F, U, RPrime, D}

	c := NewCubeState()
	c.Apply(B) // discarded: Scramble starts from solved
	c.Scramble(seq)

	want := NewCubeState()
	want.ApplyAll(seq)
	if !c.IsEqualTo(want) {
		t.Error("Scramble should replay from solved")
	}

	got := c.History()
	if FormatActions(got) != FormatActions(seq) {
		t.Errorf("History() = %v, want %v", got, seq)
	}

	// History is a copy.
	got[0] = B
	if c.History()[0] != F {
		t.Error("History() should return a copy")
	}
}

func TestReset(t *testing.T) {
	c := NewCubeState()
	c.Scramble([]Action{F, R, UPrime})
	c.Apply(D)
	c.Reset()

	if !c.IsSolved(NewCubeState()) {
		t.Error("Reset should return the cube to solved")
	}
	if h := c.History(); len(h) != 0 {
		t.Errorf("History() after Reset = %v, want empty", h)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCubeState()
	c.Scramble([]Action{F, R})
	clone := c.Clone()
	clone.Apply(U)

	if clone.IsEqualTo(c) {
		t.Error("clone should not share pieces with the original")
	}
}
