package geodesy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pi is the fixed-point π used by the plane rectangular conversion.
//
// Survey tooling that produced the reference data rounds π to eight decimals.
// The same literal keeps angle conversion on the same constants as that tooling.
const Pi = 3.14159265

// DegToRad converts decimal degrees to radians using Pi.
func DegToRad(deg float64) float64 {
	return deg * Pi / 180
}

// RadToDeg converts radians to decimal degrees using Pi.
func RadToDeg(rad float64) float64 {
	return rad * 180 / Pi
}

// ToDecimalDegrees converts a sexagesimal angle of the form "D.MM.SS.ssss"
// into decimal degrees.
//
// The fourth segment holds the fractional seconds, so "36.50.25.5000" is
// 36°50'25.5". Exactly four segments are required.
//
// Example:
//
//	deg, err := geodesy.ToDecimalDegrees("36.50.25.0000") // 36.840277...
func ToDecimalDegrees(angle string) (float64, error) {
	parts := strings.Split(angle, ".")
	if len(parts) != 4 {
		return 0, &ErrMalformedAngle{
			Value:  angle,
			Reason: fmt.Sprintf("want 4 dot-separated segments, got %d", len(parts)),
		}
	}

	deg, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, &ErrMalformedAngle{Value: angle, Reason: "degrees: " + err.Error()}
	}
	min, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, &ErrMalformedAngle{Value: angle, Reason: "minutes: " + err.Error()}
	}
	sec, err := strconv.ParseFloat(parts[2]+"."+parts[3], 64)
	if err != nil {
		return 0, &ErrMalformedAngle{Value: angle, Reason: "seconds: " + err.Error()}
	}
	if min < 0 || min >= 60 {
		return 0, &ErrMalformedAngle{Value: angle, Reason: "minutes out of range [0,60)"}
	}
	if sec < 0 || sec >= 60 {
		return 0, &ErrMalformedAngle{Value: angle, Reason: "seconds out of range [0,60)"}
	}

	// A leading minus applies to the whole angle, not just the degrees.
	if strings.HasPrefix(parts[0], "-") {
		return deg - (min*60+sec)/3600, nil
	}
	return deg + (min*60+sec)/3600, nil
}

// ParseCoordinate reads a latitude or longitude attribute value.
//
// Values with four dot-separated segments are sexagesimal (see ToDecimalDegrees).
// Anything else must be a plain decimal number and is taken as decimal degrees,
// which is how FME writes the X_CODE/Y_CODE representative point.
func ParseCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ErrMalformedAngle{Value: s, Reason: "empty value"}
	}
	if strings.Count(s, ".") == 3 {
		return ToDecimalDegrees(s)
	}
	deg, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, &ErrMalformedAngle{Value: s, Reason: "neither sexagesimal nor decimal degrees"}
	}
	return deg, nil
}

// FormatSexagesimal formats decimal degrees as "D.MM.SS.ssss".
//
// Seconds are rounded to four decimals; carries propagate into minutes and
// degrees so the output always round-trips through ToDecimalDegrees.
func FormatSexagesimal(deg float64) string {
	sign := ""
	if deg < 0 {
		sign = "-"
		deg = -deg
	}

	// Work in ten-thousandths of a second to avoid 59.99995 -> "60.0000".
	total := int64(math.Round(deg * 3600 * 10000))
	frac := total % 10000
	total /= 10000
	sec := total % 60
	total /= 60
	min := total % 60
	d := total / 60

	return fmt.Sprintf("%s%d.%02d.%02d.%04d", sign, d, min, sec, frac)
}
