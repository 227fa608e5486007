package parser

import (
	"math"
	"strconv"
	"strings"
)

// RawPoint is a posList position as numbers, still in source units.
type RawPoint struct {
	X float64
	Y float64
}

// ValidateToken parses a single posList token.
func ValidateToken(index int, token string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ErrInvalidCoordinate{Index: index, Token: token}
	}
	return v, nil
}

// ParsePoints converts a feature's coordinate tokens into points.
//
// Fewer than two tokens is ErrInsufficientGeometry. Any token that is not
// a finite number fails the whole ring with ErrInvalidCoordinate.
func ParsePoints(f ParsedFeature) ([]RawPoint, error) {
	if len(f.CoordinateTokens) < 2 {
		return nil, &ErrInsufficientGeometry{Tokens: len(f.CoordinateTokens)}
	}

	pairs := f.Pairs()
	points := make([]RawPoint, 0, len(pairs))
	for i, pair := range pairs {
		y, err := ValidateToken(2*i, pair.Y)
		if err != nil {
			return nil, err
		}
		x, err := ValidateToken(2*i+1, pair.X)
		if err != nil {
			return nil, err
		}
		points = append(points, RawPoint{X: x, Y: y})
	}
	return points, nil
}
