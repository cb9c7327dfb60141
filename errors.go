package pocketcube

import "errors"

// Sentinel errors for the pocketcube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("pocketcube: invalid action notation")
	ErrInvalidAction   = errors.New("pocketcube: invalid action encoding")
)
