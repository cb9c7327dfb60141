// Package pocketcube models a 2x2x2 cube (the "pocket cube") as a group of
// corner permutations and orientations, and provides the action vocabulary a
// solver searches over.
//
// # Cube State
//
// A CubeState holds eight corner pieces in fixed geometric slots. Each piece
// has six sticker fields indexed by Direction; three carry a color and three
// are ColorNone. Turning a face cycles the four slots on that face and
// rotates the sticker fields of each moved piece:
//
//	cube := pocketcube.NewCubeState()
//	cube.ApplyAll([]pocketcube.Action{pocketcube.R, pocketcube.U})
//	fmt.Println(cube.IsSolved(pocketcube.NewCubeState())) // false
//
// # Actions
//
// There are twelve actions: each face turned clockwise or counter-clockwise.
// Standard notation round-trips through ParseActions and FormatActions:
//
//	seq, _ := pocketcube.ParseActions("F U' R")
//	fmt.Println(pocketcube.FormatActions(seq)) // F U' R
//
// # Scrambles
//
// GenerateScramble draws random actions under SequenceRules, which reject
// sequences that waste turns: a leading prime, an action followed by its
// inverse, three identical actions in a row, and two primes in a row.
// Randomness always comes from an explicit *rand.Rand.
package pocketcube
