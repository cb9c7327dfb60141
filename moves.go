package pocketcube

// Predefined actions. The constant order matches NewAction(face, turn).
//
// Example:
//
//	cube.ApplyAll([]pocketcube.Action{pocketcube.R, pocketcube.U, pocketcube.RPrime})
const (
	F      Action = iota // Front clockwise
	FPrime               // Front counter-clockwise
	B                    // Back clockwise
	BPrime               // Back counter-clockwise
	U                    // Up clockwise
	UPrime               // Up counter-clockwise
	D                    // Down clockwise
	DPrime               // Down counter-clockwise
	L                    // Left clockwise
	LPrime               // Left counter-clockwise
	R                    // Right clockwise
	RPrime               // Right counter-clockwise
)

// AllActions lists every action in index order.
var AllActions = [NumActions]Action{F, FPrime, B, BPrime, U, UPrime, D, DPrime, L, LPrime, R, RPrime}

// SexyMove is R U R' U'; six repetitions return any cube to its start.
var SexyMove = []Action{R, U, RPrime, UPrime}
