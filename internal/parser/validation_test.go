package parser

import (
	"errors"
	"testing"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		token   string
		want    float64
		wantErr bool
	}{
		{"10", 10, false},
		{"-35000.25", -35000.25, false},
		{"1e3", 1000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ValidateToken(0, tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateToken(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParsePoints(t *testing.T) {
	f := ParsedFeature{CoordinateTokens: []string{"10", "20", "30", "40"}}
	points, err := ParsePoints(f)
	if err != nil {
		t.Fatal(err)
	}
	want := []RawPoint{{X: 20, Y: 10}, {X: 40, Y: 30}}
	if len(points) != len(want) {
		t.Fatalf("got %d points", len(points))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestParsePointsInsufficient(t *testing.T) {
	for _, tokens := range [][]string{nil, {"10"}} {
		_, err := ParsePoints(ParsedFeature{CoordinateTokens: tokens})
		var insufficient *ErrInsufficientGeometry
		if !errors.As(err, &insufficient) {
			t.Errorf("tokens %v: err = %v, want *ErrInsufficientGeometry", tokens, err)
			continue
		}
		if insufficient.Tokens != len(tokens) {
			t.Errorf("Tokens = %d, want %d", insufficient.Tokens, len(tokens))
		}
	}
}

func TestParsePointsInvalidToken(t *testing.T) {
	_, err := ParsePoints(ParsedFeature{CoordinateTokens: []string{"10", "20", "x", "40"}})
	var invalid *ErrInvalidCoordinate
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *ErrInvalidCoordinate", err)
	}
	if invalid.Index != 2 || invalid.Token != "x" {
		t.Errorf("error = %+v", invalid)
	}
}
