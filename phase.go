package pocketcube

// Phase is the layer-by-layer progress of a cube towards a target.
// Phases are ordered, so they compare with < and >.
type Phase int

const (
	// PhaseScrambled means the bottom layer is not yet in place.
	PhaseScrambled Phase = iota

	// PhaseBottomLayer means the four bottom pieces match the target.
	PhaseBottomLayer

	// PhaseSolved means every piece matches the target.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseBottomLayer:
		return "bottom_layer"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseBottomLayer:
		return "Bottom Layer"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsComplete returns true if the cube is solved.
func (p Phase) IsComplete() bool {
	return p == PhaseSolved
}

// Phase reports how far s has progressed towards target. The top layer only
// counts once the bottom layer is in place.
func (s *CubeState) Phase(target *CubeState) Phase {
	correct := s.CountMatchingPieces(target)

	for _, slot := range BottomSlots {
		if !correct[slot] {
			return PhaseScrambled
		}
	}
	for _, slot := range TopSlots {
		if !correct[slot] {
			return PhaseBottomLayer
		}
	}
	return PhaseSolved
}
