package geodesy

import (
	"errors"
	"math"
	"testing"
)

func TestToDecimalDegrees(t *testing.T) {
	tests := []struct {
		name  string
		angle string
		want  float64
	}{
		{"whole degrees", "33.00.00.0000", 33.0},
		{"minutes and seconds", "36.50.25.0000", 36.84027778},
		{"fractional seconds", "138.35.45.2500", 138.59590278},
		{"zone IX longitude", "139.50.00.0000", 139.83333333},
		{"negative", "-1.30.00.0000", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimalDegrees(tt.angle)
			if err != nil {
				t.Fatalf("ToDecimalDegrees(%q) error = %v", tt.angle, err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ToDecimalDegrees(%q) = %.8f, want %.8f", tt.angle, got, tt.want)
			}
		})
	}
}

func TestToDecimalDegreesExact(t *testing.T) {
	got, err := ToDecimalDegrees("33.00.00.0000")
	if err != nil {
		t.Fatal(err)
	}
	if got != 33.0 {
		t.Errorf("got %v, want exactly 33", got)
	}
}

func TestToDecimalDegreesMalformed(t *testing.T) {
	tests := []string{
		"",
		"36",
		"36.50",
		"36.50.25",
		"36.50.25.00.00",
		"aa.50.25.0000",
		"36.xx.25.0000",
		"36.50.yy.0000",
		"36.60.00.0000",
		"36.00.60.0000",
	}

	for _, angle := range tests {
		t.Run(angle, func(t *testing.T) {
			_, err := ToDecimalDegrees(angle)
			var malformed *ErrMalformedAngle
			if !errors.As(err, &malformed) {
				t.Fatalf("ToDecimalDegrees(%q) error = %v, want *ErrMalformedAngle", angle, err)
			}
			if malformed.Value != angle {
				t.Errorf("error value = %q, want %q", malformed.Value, angle)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"sexagesimal", "36.00.00.0000", 36, false},
		{"decimal degrees", "139.6917", 139.6917, false},
		{"integer degrees", "36", 36, false},
		{"surrounding space", " 35.5 ", 35.5, false},
		{"empty", "", 0, true},
		{"two dots", "36.50.25", 0, true},
		{"garbage", "north", 0, true},
		{"nan", "NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatSexagesimalRoundTrip(t *testing.T) {
	for _, angle := range []string{"33.00.00.0000", "36.50.25.0000", "138.35.45.2500", "26.00.00.0000"} {
		deg, err := ToDecimalDegrees(angle)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatSexagesimal(deg); got != angle {
			t.Errorf("FormatSexagesimal(%v) = %q, want %q", deg, got, angle)
		}
	}

	// 59.99999" must carry into the next minute.
	if got := FormatSexagesimal(35 + 59.0/60 + 59.99999/3600); got != "36.00.00.0000" {
		t.Errorf("carry: got %q", got)
	}
}

func TestDegToRadUsesFixedPi(t *testing.T) {
	// 180*Pi/180 rounds to 3.1415926499999998, not the literal.
	pi := 180.0
	if got, want := DegToRad(pi), pi*Pi/180; got != want {
		t.Errorf("DegToRad(180) = %v, want %v", got, want)
	}
	if got := DegToRad(180); math.Abs(got-3.14159265) > 1e-15 {
		t.Errorf("DegToRad(180) = %v, want 3.14159265 within 1e-15", got)
	}
	if got := DegToRad(180); got == math.Pi {
		t.Errorf("DegToRad(180) used math.Pi")
	}
	if got := RadToDeg(DegToRad(36.5)); math.Abs(got-36.5) > 1e-12 {
		t.Errorf("RadToDeg(DegToRad(36.5)) = %v", got)
	}
}
