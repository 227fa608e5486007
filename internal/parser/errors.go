package parser

import (
	"fmt"
)

// ErrInvalidCoordinate indicates a posList token that is not a number
type ErrInvalidCoordinate struct {
	Index int    // Token position within the posList
	Token string // Offending text
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate token %d: %q is not a number", e.Index, e.Token)
}

// ErrInsufficientGeometry indicates a posList too short to form a point
type ErrInsufficientGeometry struct {
	Tokens int
}

func (e *ErrInsufficientGeometry) Error() string {
	return fmt.Sprintf("insufficient geometry: %d coordinate token(s), need at least 2", e.Tokens)
}
