package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tag names consumed from FME-exported boundary GML.
const (
	TagPosList      = "gml:posList"
	TagPrefecture   = "fme:KEN_NAME"
	TagMunicipality = "fme:GST_NAME"
	TagDistrict     = "fme:CSS_NAME"
	TagLabel        = "fme:MOJI"
	TagAnchorX      = "fme:X_CODE"
	TagAnchorY      = "fme:Y_CODE"
)

// ParsedFeature holds the values pulled out of one feature fragment.
//
// A missing tag leaves its field empty. Sparse attribute data is normal
// for these exports, so absence is never an error.
type ParsedFeature struct {
	// CoordinateTokens is the posList split on single spaces, in source order.
	// Tokens alternate Y, X.
	CoordinateTokens []string
	Prefecture       string // KEN_NAME
	Municipality     string // GST_NAME
	District         string // CSS_NAME
	Label            string // MOJI
	AnchorX          string // X_CODE, longitude of the representative point
	AnchorY          string // Y_CODE, latitude of the representative point
}

// RawPair is one (Y, X) pair from a posList, still as text.
type RawPair struct {
	Y string
	X string
}

// Pairs groups CoordinateTokens into (Y, X) pairs.
// A trailing unpaired token is ignored.
func (f ParsedFeature) Pairs() []RawPair {
	n := len(f.CoordinateTokens) / 2
	pairs := make([]RawPair, 0, n)
	for i := 0; i+1 < len(f.CoordinateTokens); i += 2 {
		pairs = append(pairs, RawPair{
			Y: f.CoordinateTokens[i],
			X: f.CoordinateTokens[i+1],
		})
	}
	return pairs
}

// GroupKey returns the layer name shared by features with the same
// administrative ancestry: "【" + prefecture + municipality + district + "】".
func (f ParsedFeature) GroupKey() string {
	return "【" + f.Prefecture + f.Municipality + f.District + "】"
}

// HasLabel reports whether the label should be placed.
// A single space is the exporter's "no name" sentinel.
func (f ParsedFeature) HasLabel() bool {
	return f.Label != "" && f.Label != " "
}

// ExtractOptions configures an Extractor.
type ExtractOptions struct {
	// NormalizeText applies Unicode NFC to attribute values so that
	// decomposed kana compare equal in group keys.
	NormalizeText bool
}

// Extractor pulls tag values out of feature fragments.
//
// It deliberately avoids an XML tree: each value is the text between
// "<tag>" and the next "<", which tolerates the truncated and loosely
// namespaced fragments produced by splitting on featureMember.
type Extractor struct {
	opts ExtractOptions
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ExtractOptions) *Extractor {
	return &Extractor{opts: opts}
}

var tagPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, tag := range []string{TagPosList, TagPrefecture, TagMunicipality, TagDistrict, TagLabel, TagAnchorX, TagAnchorY} {
		tagPatterns[tag] = regexp.MustCompile("<" + regexp.QuoteMeta(tag) + ">([^<]*)<")
	}
}

// TagValue returns the first captured value of tag in fragment, or "".
func TagValue(tag, fragment string) string {
	re, ok := tagPatterns[tag]
	if !ok {
		re = regexp.MustCompile("<" + regexp.QuoteMeta(tag) + ">([^<]*)<")
	}
	m := re.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return m[1]
}

// Extract parses one feature fragment.
func (e *Extractor) Extract(fragment string) ParsedFeature {
	f := ParsedFeature{
		CoordinateTokens: splitPosList(TagValue(TagPosList, fragment)),
		Prefecture:       e.text(TagValue(TagPrefecture, fragment)),
		Municipality:     e.text(TagValue(TagMunicipality, fragment)),
		District:         e.text(TagValue(TagDistrict, fragment)),
		Label:            e.text(TagValue(TagLabel, fragment)),
		AnchorX:          TagValue(TagAnchorX, fragment),
		AnchorY:          TagValue(TagAnchorY, fragment),
	}
	return f
}

// Extract parses a fragment with default options (no normalization).
func Extract(fragment string) ParsedFeature {
	return NewExtractor(ExtractOptions{}).Extract(fragment)
}

func (e *Extractor) text(s string) string {
	if e.opts.NormalizeText {
		return norm.NFC.String(s)
	}
	return s
}

// splitPosList splits on single spaces. Empty tokens from doubled spaces or
// a trailing separator carry no value and are dropped.
func splitPosList(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, " ")
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
