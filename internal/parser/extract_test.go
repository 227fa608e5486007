package parser

import (
	"reflect"
	"testing"
)

const sampleFragment = ` gml:id="id1">
<fme:Boundary>
<fme:KEN_NAME>東京都</fme:KEN_NAME>
<fme:GST_NAME>千代田区</fme:GST_NAME>
<fme:CSS_NAME>丸の内</fme:CSS_NAME>
<fme:MOJI>丸の内一丁目</fme:MOJI>
<fme:X_CODE>139.7649</fme:X_CODE>
<fme:Y_CODE>35.6812</fme:Y_CODE>
<gml:surfaceProperty><gml:Surface srsName="EPSG:2451"><gml:patches><gml:PolygonPatch><gml:exterior><gml:LinearRing>
<gml:posList>-35000.5 -7500.25 -35010 -7490 -35020 -7500 -35000.5 -7500.25</gml:posList>
</gml:LinearRing></gml:exterior></gml:PolygonPatch></gml:patches></gml:Surface></gml:surfaceProperty>
</fme:Boundary>
</gml:featureMember>
`

func TestExtract(t *testing.T) {
	f := Extract(sampleFragment)

	if f.Prefecture != "東京都" || f.Municipality != "千代田区" || f.District != "丸の内" {
		t.Errorf("names = %q %q %q", f.Prefecture, f.Municipality, f.District)
	}
	if f.Label != "丸の内一丁目" {
		t.Errorf("label = %q", f.Label)
	}
	if f.AnchorX != "139.7649" || f.AnchorY != "35.6812" {
		t.Errorf("anchor = %q, %q", f.AnchorX, f.AnchorY)
	}
	if len(f.CoordinateTokens) != 8 {
		t.Fatalf("got %d tokens, want 8", len(f.CoordinateTokens))
	}
	if f.GroupKey() != "【東京都千代田区丸の内】" {
		t.Errorf("group key = %q", f.GroupKey())
	}
}

func TestExtractMissingTags(t *testing.T) {
	f := Extract(`<fme:MOJI>only a label</fme:MOJI>`)

	if f.Prefecture != "" || f.Municipality != "" || f.District != "" {
		t.Errorf("expected empty names, got %+v", f)
	}
	if f.AnchorX != "" || f.AnchorY != "" {
		t.Errorf("expected empty anchor, got %+v", f)
	}
	if f.CoordinateTokens != nil {
		t.Errorf("expected no tokens, got %v", f.CoordinateTokens)
	}
	if f.GroupKey() != "【】" {
		t.Errorf("group key = %q, want 【】", f.GroupKey())
	}
}

func TestExtractFirstMatchWins(t *testing.T) {
	f := Extract(`<fme:MOJI>first</fme:MOJI><fme:MOJI>second</fme:MOJI>`)
	if f.Label != "first" {
		t.Errorf("label = %q, want first", f.Label)
	}
}

func TestExtractUnterminatedTag(t *testing.T) {
	// Without a following '<' the pattern does not match.
	f := Extract(`<fme:MOJI>dangling`)
	if f.Label != "" {
		t.Errorf("label = %q, want empty", f.Label)
	}
}

func TestPairsYThenX(t *testing.T) {
	f := Extract(`<gml:posList>10 20 30 40</gml:posList>`)
	want := []RawPair{{Y: "10", X: "20"}, {Y: "30", X: "40"}}
	if got := f.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestPairsOddTokenCount(t *testing.T) {
	f := ParsedFeature{CoordinateTokens: []string{"1", "2", "3"}}
	want := []RawPair{{Y: "1", X: "2"}}
	if got := f.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestSplitPosList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"10", []string{"10"}},
		{"10 20", []string{"10", "20"}},
		{"10  20 ", []string{"10", "20"}},
		{" 1.5 -2.5 ", []string{"1.5", "-2.5"}},
	}
	for _, tt := range tests {
		got := splitPosList(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPosList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Town", true},
		{"", false},
		{" ", false},
		{"  ", true},
	}
	for _, tt := range tests {
		if got := (ParsedFeature{Label: tt.label}).HasLabel(); got != tt.want {
			t.Errorf("HasLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestExtractNormalizeText(t *testing.T) {
	decomposed := "\u30ab\u3099" // カ + combining voiced sound mark
	composed := "\u30ac"          // ガ
	fragment := "<fme:CSS_NAME>" + decomposed + "</fme:CSS_NAME>"

	raw := NewExtractor(ExtractOptions{}).Extract(fragment)
	if raw.District != decomposed {
		t.Errorf("unnormalized district = %q", raw.District)
	}

	nfc := NewExtractor(ExtractOptions{NormalizeText: true}).Extract(fragment)
	if nfc.District != composed {
		t.Errorf("normalized district = %q, want %q", nfc.District, composed)
	}
}

func TestTagValueUnknownTag(t *testing.T) {
	if got := TagValue("fme:OTHER", "<fme:OTHER>x</fme:OTHER>"); got != "x" {
		t.Errorf("TagValue = %q", got)
	}
}
