package pocketcube

import (
	"fmt"
	"strings"
)

// Color represents a sticker color. ColorNone marks a direction that has no
// sticker on a given corner piece.
type Color byte

const (
	ColorNone Color = iota
	Yellow
	White
	Green
	Blue
	Orange
	Red
)

func (c Color) String() string {
	switch c {
	case Yellow:
		return "Y"
	case White:
		return "W"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Orange:
		return "O"
	case Red:
		return "R"
	case ColorNone:
		return "-"
	default:
		return "?"
	}
}

// Name returns the full lowercase color name.
func (c Color) Name() string {
	switch c {
	case Yellow:
		return "yellow"
	case White:
		return "white"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Red:
		return "red"
	case ColorNone:
		return "none"
	default:
		return "unknown"
	}
}

// Direction indexes the six sticker fields of a piece.
type Direction int

const (
	Left Direction = iota
	Right
	Front
	Back
	Top
	Bottom
)

// NumDirections is the number of sticker fields on a piece.
const NumDirections = 6

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Front:
		return "front"
	case Back:
		return "back"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "?"
	}
}

// Piece is a corner piece: six sticker fields indexed by Direction, exactly
// three of which carry a real color.
type Piece [NumDirections]Color

// Colors returns the real (non-none) colors of the piece in direction order.
func (p Piece) Colors() []Color {
	colors := make([]Color, 0, 3)
	for _, c := range p {
		if c != ColorNone {
			colors = append(colors, c)
		}
	}
	return colors
}

// NumSlots is the number of corner slots on a 2x2x2 cube.
const NumSlots = 8

// Slots are addressed as x*4 + y*2 + z where
//
//	x: 0 = left,  1 = right
//	y: 0 = top,   1 = bottom
//	z: 0 = front, 1 = back
//
// The bottom layer (y = 1) is layer one.
var (
	BottomSlots = [4]int{2, 3, 6, 7}
	TopSlots    = [4]int{0, 1, 4, 5}
)

// SlotIndex returns the slot index for the given coordinates.
func SlotIndex(x, y, z int) int {
	return x*4 + y*2 + z
}

// IsBottomSlot reports whether slot lies in layer one.
func IsBottomSlot(slot int) bool {
	return (slot>>1)&1 == 1
}

// CubeState is a 2x2x2 cube: eight corner pieces held by value in fixed
// geometric slots, plus the scramble that produced the current state.
type CubeState struct {
	pieces  [NumSlots]Piece
	history []Action
}

// NewCubeState creates a solved cube: orange left, red right, green front,
// blue back, white top, yellow bottom.
func NewCubeState() *CubeState {
	return &CubeState{pieces: solvedPieces}
}

var solvedPieces = func() [NumSlots]Piece {
	var pieces [NumSlots]Piece
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				var p Piece
				if x == 0 {
					p[Left] = Orange
				} else {
					p[Right] = Red
				}
				if z == 0 {
					p[Front] = Green
				} else {
					p[Back] = Blue
				}
				if y == 0 {
					p[Top] = White
				} else {
					p[Bottom] = Yellow
				}
				pieces[SlotIndex(x, y, z)] = p
			}
		}
	}
	return pieces
}()

// Clone creates a deep copy of the cube state.
func (s *CubeState) Clone() *CubeState {
	clone := &CubeState{pieces: s.pieces}
	if s.history != nil {
		clone.history = append([]Action(nil), s.history...)
	}
	return clone
}

// Reset returns the cube to the solved state and clears its history.
func (s *CubeState) Reset() {
	s.pieces = solvedPieces
	s.history = nil
}

// Scramble resets the cube to solved, replays actions in order and records
// them as the scramble history.
func (s *CubeState) Scramble(actions []Action) {
	s.Reset()
	s.history = append(s.history, actions...)
	s.ApplyAll(actions)
}

// Apply performs a single action in place.
func (s *CubeState) Apply(a Action) {
	if !a.Valid() {
		return
	}
	t := &transforms[a]
	next := s.pieces
	for _, slot := range t.slots {
		var q Piece
		for d, c := range s.pieces[slot] {
			q[t.turn[d]] = c
		}
		next[t.dest[slot]] = q
	}
	s.pieces = next
}

// ApplyAll performs actions in order without touching the recorded history.
func (s *CubeState) ApplyAll(actions []Action) {
	for _, a := range actions {
		s.Apply(a)
	}
}

// ApplyFace turns a face in the given direction.
func (s *CubeState) ApplyFace(face Face, turn Turn) {
	s.Apply(NewAction(face, turn))
}

// History returns a copy of the recorded scramble.
func (s *CubeState) History() []Action {
	return append([]Action(nil), s.history...)
}

// Pieces returns the eight pieces in slot order.
func (s *CubeState) Pieces() [NumSlots]Piece {
	return s.pieces
}

// Piece returns the piece held in slot.
func (s *CubeState) Piece(slot int) Piece {
	return s.pieces[slot]
}

// Slot returns the piece at the given coordinates.
func (s *CubeState) Slot(x, y, z int) Piece {
	return s.pieces[SlotIndex(x, y, z)]
}

// SetPiece overwrites a slot. It does not preserve the permutation invariant
// and exists for building target states and test fixtures.
func (s *CubeState) SetPiece(slot int, p Piece) {
	s.pieces[slot] = p
}

// IsEqualTo compares every sticker field of every slot and stops at the
// first mismatch.
func (s *CubeState) IsEqualTo(other *CubeState) bool {
	if other == nil {
		return false
	}
	return s.pieces == other.pieces
}

// IsSolved reports whether the cube matches target exactly.
func (s *CubeState) IsSolved(target *CubeState) bool {
	return s.IsEqualTo(target)
}

// CountMatchingPieces reports, per slot, whether the piece equals the piece
// in the same slot of target.
func (s *CubeState) CountMatchingPieces(target *CubeState) [NumSlots]bool {
	var matches [NumSlots]bool
	for i := range s.pieces {
		matches[i] = s.pieces[i] == target.pieces[i]
	}
	return matches
}

// String returns a per-slot listing of the visible stickers.
func (s *CubeState) String() string {
	var b strings.Builder
	for slot, p := range s.pieces {
		fmt.Fprintf(&b, "%-18s", slotName(slot)+":")
		for d, c := range p {
			if c == ColorNone {
				continue
			}
			fmt.Fprintf(&b, " %s=%s", Direction(d), c.Name())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func slotName(slot int) string {
	x, y, z := "left", "top", "front"
	if slot&4 != 0 {
		x = "right"
	}
	if slot&2 != 0 {
		y = "bottom"
	}
	if slot&1 != 0 {
		z = "back"
	}
	return x + " " + y + " " + z
}

// vec is an integer vector with X pointing right, Y up and Z to the front.
type vec [3]int

var directionVecs = [NumDirections]vec{
	Left:   {-1, 0, 0},
	Right:  {1, 0, 0},
	Front:  {0, 0, 1},
	Back:   {0, 0, -1},
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
}

func slotVec(slot int) vec {
	x, y, z := (slot>>2)&1, (slot>>1)&1, slot&1
	return vec{2*x - 1, 1 - 2*y, 1 - 2*z}
}

func vecSlot(v vec) int {
	return SlotIndex((v[0]+1)/2, (1-v[1])/2, (1-v[2])/2)
}

func vecDirection(v vec) Direction {
	for d, dv := range directionVecs {
		if dv == v {
			return Direction(d)
		}
	}
	panic(fmt.Sprintf("pocketcube: %v is not an axis direction", v))
}

func dot(a, b vec) int {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b vec) vec {
	return vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// rotate turns v a quarter turn about the unit axis n. Clockwise is as seen
// looking at the face whose outward normal is n.
func rotate(v, n vec, clockwise bool) vec {
	c := cross(n, v)
	k := dot(n, v)
	sign := 1
	if clockwise {
		sign = -1
	}
	return vec{
		sign*c[0] + n[0]*k,
		sign*c[1] + n[1]*k,
		sign*c[2] + n[2]*k,
	}
}

// transform is the precomputed effect of one action.
type transform struct {
	slots [4]int                   // slots on the turned face
	dest  [NumSlots]int            // destination slot of each slot
	turn  [NumDirections]Direction // new direction of each sticker field
}

var transforms = buildTransforms()

func buildTransforms() [NumActions]transform {
	var out [NumActions]transform
	for a := Action(0); a < NumActions; a++ {
		n := directionVecs[a.Face().Direction()]
		cw := a.Turn() == CW
		t := &out[a]
		for slot := 0; slot < NumSlots; slot++ {
			t.dest[slot] = slot
		}
		i := 0
		for slot := 0; slot < NumSlots; slot++ {
			v := slotVec(slot)
			if dot(v, n) != 1 {
				continue
			}
			t.slots[i] = slot
			i++
			t.dest[slot] = vecSlot(rotate(v, n, cw))
		}
		for d := Direction(0); d < NumDirections; d++ {
			t.turn[d] = vecDirection(rotate(directionVecs[d], n, cw))
		}
	}
	return out
}
