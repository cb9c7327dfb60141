package pocketcube

import (
	"math/rand/v2"
	"testing"
)

func TestGenerateScrambleRules(t *testing.T) {
	rules := DefaultRules()

	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		seq := GenerateScramble(60, rng)

		if len(seq) != 60 {
			t.Fatalf("len = %d, want 60", len(seq))
		}
		if seq[0].IsPrime() {
			t.Errorf("seed %d: first action %v is prime", seed, seq[0])
		}
		for i := 1; i < len(seq); i++ {
			if AreOppositeActions(seq[i-1], seq[i]) {
				t.Errorf("seed %d: %v followed by its inverse at %d", seed, seq[i-1], i)
			}
			if seq[i-1].IsPrime() && seq[i].IsPrime() {
				t.Errorf("seed %d: consecutive primes at %d", seed, i)
			}
			if i >= 2 && seq[i] == seq[i-1] && seq[i] == seq[i-2] {
				t.Errorf("seed %d: triple %v at %d", seed, seq[i], i)
			}
		}
		if !rules.Valid(seq) {
			t.Errorf("seed %d: Valid() rejected a generated scramble", seed)
		}
	}
}

func TestGenerateScrambleDeterministic(t *testing.T) {
	a := GenerateScramble(25, rand.New(rand.NewPCG(42, 7)))
	b := GenerateScramble(25, rand.New(rand.NewPCG(42, 7)))
	if FormatActions(a) != FormatActions(b) {
		t.Errorf("same seed produced %q and %q", FormatActions(a), FormatActions(b))
	}
}

func TestGenerateScrambleEmpty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	if got := GenerateScramble(0, rng); len(got) != 0 {
		t.Errorf("GenerateScramble(0) = %v", got)
	}
	if got := GenerateScramble(-3, rng); len(got) != 0 {
		t.Errorf("GenerateScramble(-3) = %v", got)
	}
}

func TestRulesAllows(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		seq  []Action
		want bool
	}{
		{"leading prime", []Action{FPrime}, false},
		{"leading cw", []Action{F}, true},
		{"inverse", []Action{F, FPrime}, false},
		{"consecutive primes", []Action{F, UPrime, RPrime}, false},
		{"triple", []Action{R, R, R}, false},
		{"double", []Action{R, R}, true},
		{"prime after cw", []Action{R, UPrime}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Allows(tt.seq, len(tt.seq)-1); got != tt.want {
				t.Errorf("Allows(%v) = %v, want %v", tt.seq, got, tt.want)
			}
		})
	}

	relaxed := SequenceRules{ForbidInverse: true}
	if !relaxed.Valid([]Action{FPrime, UPrime, RPrime, RPrime, RPrime}) {
		t.Error("relaxed rules should only reject inverses")
	}
	if relaxed.Valid([]Action{F, R, RPrime}) {
		t.Error("relaxed rules should still reject inverses")
	}
}

func TestAllowsAround(t *testing.T) {
	rules := DefaultRules()
	seq := []Action{F, U, R, D}

	seq[1] = RPrime // R' R would be an inverse pair
	if rules.AllowsAround(seq, 1) {
		t.Error("replacing U with R' before R should be rejected")
	}

	seq[1] = L
	if !rules.AllowsAround(seq, 1) {
		t.Error("replacing U with L should be accepted")
	}
}
