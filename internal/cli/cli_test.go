package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `<gml:FeatureCollection>
<gml:Envelope srsName="EPSG:2451"></gml:Envelope>
<gml:featureMember>
<fme:KEN_NAME>A</fme:KEN_NAME><fme:GST_NAME>B</fme:GST_NAME><fme:CSS_NAME>C</fme:CSS_NAME>
<fme:MOJI>Town</fme:MOJI><fme:X_CODE>139.50.00.0000</fme:X_CODE><fme:Y_CODE>36.00.00.0000</fme:Y_CODE>
<gml:posList>0 0 0 100 100 100 100 0</gml:posList>
</gml:featureMember>
</gml:FeatureCollection>`

func writeSample(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "13101.gml")
	if err := os.WriteFile(p, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertSummary(t *testing.T) {
	path := writeSample(t)
	out, errOut, err := execute(t, "convert", path)
	if err != nil {
		t.Fatalf("unexpected error: %v (stderr %s)", err, errOut)
	}
	if !strings.Contains(out, "zone=9 features=1 polygons=1 labels=1") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(errOut, "Completed 1 of 1 document(s)") {
		t.Errorf("expected completion line on stderr, got:\n%s", errOut)
	}
}

func TestConvertJSON(t *testing.T) {
	path := writeSample(t)
	out, _, err := execute(t, "convert", "--format", "json", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		RunID      string `json:"run_id"`
		Completed  bool   `json:"completed"`
		Primitives []struct {
			Kind   string `json:"kind"`
			Layer  string `json:"layer"`
			Group  string `json:"group"`
			Text   string `json:"text"`
			Anchor *struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"anchor"`
			Style *struct {
				StrokeWidth float64    `json:"stroke_width"`
				Font        string     `json:"font"`
				Color       [4]float64 `json:"color"`
			} `json:"style"`
		} `json:"primitives"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if payload.RunID == "" || !payload.Completed {
		t.Errorf("expected run id and completion, got %+v", payload)
	}
	if len(payload.Primitives) != 3 {
		t.Fatalf("expected polygon, box and label, got %d", len(payload.Primitives))
	}
	label := payload.Primitives[2]
	if label.Kind != "label" || label.Group != "【ABC】" || label.Text != "Town" || label.Layer != "町名" {
		t.Errorf("unexpected label %+v", label)
	}
	if label.Anchor == nil || label.Anchor.X != 1640 || label.Anchor.Y != 5534 {
		t.Errorf("expected anchor at (1640, 5534), got %+v", label.Anchor)
	}
	if label.Style == nil || label.Style.Font != "ShinGoPro-Medium" || label.Style.Color != [4]float64{0, 100, 100, 0} {
		t.Errorf("expected default label style, got %+v", label.Style)
	}
	if poly := payload.Primitives[0]; poly.Style == nil || poly.Style.StrokeWidth != 1 {
		t.Errorf("expected polygon stroke width 1, got %+v", poly.Style)
	}
}

func TestConvertGeoJSONToFile(t *testing.T) {
	path := writeSample(t)
	outPath := filepath.Join(t.TempDir(), "out.geojson")
	metricsPath := filepath.Join(t.TempDir(), "gmlbound.prom")

	if _, _, err := execute(t, "convert", "-f", "geojson", "-o", outPath, "--metrics-file", metricsPath, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"FeatureCollection"`) || !strings.Contains(string(b), `"Polygon"`) {
		t.Errorf("unexpected geojson: %s", b)
	}
	for _, want := range []string{`"labelbox"`, `"font":"ShinGoPro-Medium"`, `"stroke_width":1`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("expected %s in geojson: %s", want, b)
		}
	}

	m, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(m), "gmlbound_polygons_total 1") {
		t.Errorf("unexpected metrics: %s", m)
	}
}

func TestConvertMissingFile(t *testing.T) {
	_, errOut, err := execute(t, "convert", filepath.Join(t.TempDir(), "missing.gml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "missing.gml") {
		t.Errorf("expected failed path on stderr, got %s", errOut)
	}
}

func TestConvertBadFormat(t *testing.T) {
	path := writeSample(t)
	if _, _, err := execute(t, "convert", "--format", "svg", path); err == nil {
		t.Fatal("expected error")
	}
}

func TestConvertConfigFile(t *testing.T) {
	path := writeSample(t)
	cfgPath := filepath.Join(t.TempDir(), "gmlbound.yaml")
	if err := os.WriteFile(cfgPath, []byte("zone_offsets:\n  \"2451\": {x: 0, y: 0}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--config", cfgPath, "convert", "--format", "json", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"x": 0,`) {
		t.Errorf("expected anchor moved to origin, got:\n%s", out)
	}
}

func TestConvertRequiresFiles(t *testing.T) {
	if _, _, err := execute(t, "convert"); err == nil {
		t.Fatal("expected error without files")
	}
}

func TestZones(t *testing.T) {
	out, _, err := execute(t, "zones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected header and 19 zones, got %d lines", len(lines))
	}
	if !strings.Contains(out, "2451 (default)") {
		t.Errorf("expected default marker on zone IX:\n%s", out)
	}
	if !strings.Contains(out, "139.50.00.0000 (139.833333)") {
		t.Errorf("expected decimal origin for zone IX:\n%s", out)
	}
}
