package lsystem

import (
	"errors"
	"fmt"
)

// ErrUnbalanced means a sequence's brackets do not pair up.
var ErrUnbalanced = errors.New("unbalanced brackets")

// StructuralError locates an unbalanced bracket in a symbol sequence.
type StructuralError struct {
	// Position is the index of the offending ']', or the sequence length if
	// brackets were left open.
	Position int
	// Open is the number of unclosed '[' at the end of the sequence.
	Open int
}

func (e *StructuralError) Error() string {
	if e.Open > 0 {
		return fmt.Sprintf("%v: %d '[' left open at end of sequence", ErrUnbalanced, e.Open)
	}
	return fmt.Sprintf("%v: ']' at position %d has no matching '['", ErrUnbalanced, e.Position)
}

func (e *StructuralError) Unwrap() error {
	return ErrUnbalanced
}
