package geodesy

import (
	"fmt"
)

// ErrMalformedAngle indicates an angle string that is not "D.MM.SS.ssss"
// (or, for ParseCoordinate, not a plain decimal either).
type ErrMalformedAngle struct {
	Value  string
	Reason string
}

func (e *ErrMalformedAngle) Error() string {
	return fmt.Sprintf("malformed angle %q: %s", e.Value, e.Reason)
}
