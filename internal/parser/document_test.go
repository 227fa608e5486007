package parser

import (
	"testing"
)

func TestFindZoneCode(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"present", `<gml:Envelope srsName="EPSG:2451">`, "2451", true},
		{"first wins", `EPSG:2443 ... EPSG:2451`, "2443", true},
		{"no digits", `srsName="EPSG:"`, "", true},
		{"absent", `<gml:Envelope srsName="JGD2000">`, "", false},
		{"empty", ``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindZoneCode(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FindZoneCode() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSplitFeatures(t *testing.T) {
	text := `<header EPSG:2451><gml:featureMember>one</gml:featureMember><gml:featureMember>two</gml:featureMember></root>`
	got := SplitFeatures(text)
	if len(got) != 2 {
		t.Fatalf("got %d fragments, want 2", len(got))
	}
	if got[0] != ">one</gml:featureMember>" {
		t.Errorf("fragment 0 = %q", got[0])
	}

	if frags := SplitFeatures("no features here"); frags != nil {
		t.Errorf("expected nil, got %v", frags)
	}
}

func TestParseDocument(t *testing.T) {
	doc := ParseDocument(`EPSG:2446<gml:featureMember>a<gml:featureMember>b`)
	if !doc.HasZoneCode || doc.ZoneCode != "2446" {
		t.Errorf("zone = %q, %v", doc.ZoneCode, doc.HasZoneCode)
	}
	if len(doc.Fragments) != 2 {
		t.Errorf("fragments = %d", len(doc.Fragments))
	}

	noZone := ParseDocument(`<gml:featureMember>a<gml:featureMember>b`)
	if noZone.HasZoneCode || len(noZone.Fragments) != 0 {
		t.Errorf("document without zone = %+v", noZone)
	}
}
