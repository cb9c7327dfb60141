package pocketcube

import (
	"fmt"
	"strings"
)

// Face identifies one of the six faces that can be turned.
type Face uint8

const (
	FaceF Face = iota // Front
	FaceB             // Back
	FaceU             // Up
	FaceD             // Down
	FaceL             // Left
	FaceR             // Right
)

// NumFaces is the number of turnable faces.
const NumFaces = 6

func (f Face) String() string {
	switch f {
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	case FaceU:
		return "U"
	case FaceD:
		return "D"
	case FaceL:
		return "L"
	case FaceR:
		return "R"
	default:
		return "?"
	}
}

// Direction returns the outward direction of the face.
func (f Face) Direction() Direction {
	switch f {
	case FaceF:
		return Front
	case FaceB:
		return Back
	case FaceU:
		return Top
	case FaceD:
		return Bottom
	case FaceL:
		return Left
	default:
		return Right
	}
}

// Turn is the direction of a quarter turn, seen looking at the face.
type Turn uint8

const (
	CW  Turn = iota // Clockwise
	CCW             // Counter-clockwise ("prime")
)

// Action is one of the twelve quarter turns. The value is face*2 + turn;
// it is an in-memory index, not a wire format.
type Action uint8

// NumActions is the number of distinct actions.
const NumActions = NumFaces * 2

// NewAction combines a face and a turn direction.
func NewAction(f Face, t Turn) Action {
	return Action(uint8(f)*2 + uint8(t))
}

// Valid reports whether a is one of the twelve actions.
func (a Action) Valid() bool {
	return a < NumActions
}

// Face returns the face turned by a.
func (a Action) Face() Face {
	return Face(a / 2)
}

// Turn returns the turn direction of a.
func (a Action) Turn() Turn {
	return Turn(a % 2)
}

// IsPrime reports whether a is a counter-clockwise turn.
func (a Action) IsPrime() bool {
	return a.Turn() == CCW
}

// Inverse returns the action that undoes a.
func (a Action) Inverse() Action {
	return a ^ 1
}

// Notation returns the standard notation for a, e.g. F or F'.
func (a Action) Notation() string {
	if !a.Valid() {
		return "?"
	}
	if a.IsPrime() {
		return a.Face().String() + "'"
	}
	return a.Face().String()
}

// String returns the notation string (alias for Notation).
func (a Action) String() string {
	return a.Notation()
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAction, a)
	}
	return []byte(a.Notation()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AreOppositeActions reports whether a and b turn the same face in opposite
// directions.
func AreOppositeActions(a, b Action) bool {
	return a.Face() == b.Face() && a.Turn() != b.Turn()
}

func parseFace(c byte) (Face, bool) {
	switch c {
	case 'F', 'f':
		return FaceF, true
	case 'B', 'b':
		return FaceB, true
	case 'U', 'u':
		return FaceU, true
	case 'D', 'd':
		return FaceD, true
	case 'L', 'l':
		return FaceL, true
	case 'R', 'r':
		return FaceR, true
	}
	return 0, false
}

func isPrimeMark(c byte) bool {
	return c == '\'' || c == '`'
}

// ParseAction parses a single action such as R or R'.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	face, ok := parseFace(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) == 2 {
		if !isPrimeMark(s[1]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		turn = CCW
	}

	return NewAction(face, turn), nil
}

// ParseActions parses a sequence of actions. Whitespace between actions is
// optional, so both "F U' R" and "FU'R" are accepted. A half turn such as
// R2 expands to two clockwise quarter turns.
func ParseActions(s string) ([]Action, error) {
	actions := make([]Action, 0, len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			i++
			continue
		}

		face, ok := parseFace(c)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidNotation, c, i)
		}
		i++

		switch {
		case i < len(s) && isPrimeMark(s[i]):
			actions = append(actions, NewAction(face, CCW))
			i++
		case i < len(s) && s[i] == '2':
			a := NewAction(face, CW)
			actions = append(actions, a, a)
			i++
		default:
			actions = append(actions, NewAction(face, CW))
		}
	}

	return actions, nil
}

// FormatActions formats actions as a space-separated notation string.
func FormatActions(actions []Action) string {
	if len(actions) == 0 {
		return ""
	}

	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.Notation()
	}

	return strings.Join(parts, " ")
}

// EncodeActions packs actions one byte each.
func EncodeActions(actions []Action) []byte {
	out := make([]byte, len(actions))
	for i, a := range actions {
		out[i] = byte(a)
	}
	return out
}

// DecodeActions unpacks bytes produced by EncodeActions.
func DecodeActions(data []byte) ([]Action, error) {
	actions := make([]Action, len(data))
	for i, b := range data {
		a := Action(b)
		if !a.Valid() {
			return nil, fmt.Errorf("%w: byte %d at offset %d", ErrInvalidAction, b, i)
		}
		actions[i] = a
	}
	return actions, nil
}
