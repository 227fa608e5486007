package parser

import (
	"regexp"
	"strings"
)

// FeatureBoundary separates feature fragments in a GML feature collection.
const FeatureBoundary = "<gml:featureMember"

var zoneCodePattern = regexp.MustCompile(`EPSG:([0-9]*)`)

// Document is a boundary GML document split into its parts.
type Document struct {
	// ZoneCode is the digits following the first "EPSG:" marker.
	// It may be empty when the marker carries no digits.
	ZoneCode string
	// HasZoneCode is false when the document has no "EPSG:" marker at all.
	HasZoneCode bool
	// Fragments are the per-feature texts in document order, preamble removed.
	Fragments []string
}

// ParseDocument locates the zone marker and splits the feature fragments.
//
// Fragments are only split when a zone code is present; without one the
// document cannot be positioned and yields no features.
func ParseDocument(text string) Document {
	code, ok := FindZoneCode(text)
	doc := Document{ZoneCode: code, HasZoneCode: ok}
	if ok {
		doc.Fragments = SplitFeatures(text)
	}
	return doc
}

// FindZoneCode returns the digits of the first "EPSG:<digits>" marker.
func FindZoneCode(text string) (string, bool) {
	m := zoneCodePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SplitFeatures splits text on FeatureBoundary and discards the preamble.
func SplitFeatures(text string) []string {
	parts := strings.Split(text, FeatureBoundary)
	if len(parts) < 2 {
		return nil
	}
	return parts[1:]
}
