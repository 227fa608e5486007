package gmlbound

import (
	"log/slog"

	"github.com/beetlebugorg/gmlbound/internal/geodesy"
)

// Zone is a Plane Rectangular Coordinate System zone with its drawing offset.
type Zone = geodesy.ZoneDefinition

// Projection converts decimal degrees into zone-relative metres.
type Projection = geodesy.Projection

// LookupZone returns the zone for an EPSG code, falling back to zone IX.
func LookupZone(code string) Zone {
	return geodesy.LookupZone(code)
}

// Zones returns all 19 zones ordered by index.
func Zones() []Zone {
	return geodesy.Zones()
}

// SeriesProjection returns the default truncated-series projection.
func SeriesProjection() Projection {
	return geodesy.SeriesProjection{}
}

// PreciseProjection returns a full-precision transverse Mercator projection.
//
// Label anchors move by millimetres compared with SeriesProjection; use it
// only when compatibility with existing artwork is not required.
func PreciseProjection() Projection {
	return geodesy.NewPreciseProjection()
}

// Color is a CMYK process color with components in 0..100.
type Color struct {
	C, M, Y, K float64
}

// Palette is the color set handed to styled and label-box sinks.
// A zero Palette passed to NewProcessor is replaced by the defaults.
type Palette struct {
	AreaStroke Color
	AreaFill   Color
	Font       Color
	BoxFill    Color
	BoxStroke  Color
}

// Offset is a drawing-space position for a zone origin.
type Offset struct {
	X float64
	Y float64
}

// Options configures a Processor.
type Options struct {
	// ScaleFactor converts metres into drawing units.
	ScaleFactor float64

	// FontPoint and StrokePoint size labels and outlines, in points.
	// FontPoint also sizes the box drawn behind each label.
	FontPoint   float64
	FontType    string
	StrokePoint float64

	// Colors style polygons, labels and label boxes. See StyledSink.
	Colors Palette

	// Projection converts label anchors. Nil means SeriesProjection.
	Projection Projection

	// NormalizeText applies Unicode NFC to attribute text before grouping.
	NormalizeText bool

	// ZoneOffsets replaces the built-in drawing offset for the listed EPSG codes.
	ZoneOffsets map[string]Offset

	// Logger receives warnings and per-document summaries. Nil discards.
	Logger *slog.Logger

	// Observer is notified after each document. Optional.
	Observer Observer
}

// DefaultScaleFactor is drawing units per metre.
const DefaultScaleFactor = 27.0 / 209.0

// DefaultOptions returns options with defaults. Start from it and override
// fields; a zero NormalizeText means false.
func DefaultOptions() Options {
	return Options{
		ScaleFactor: DefaultScaleFactor,
		FontPoint:   6,
		FontType:    "ShinGoPro-Medium",
		StrokePoint: 1,
		Colors: Palette{
			AreaStroke: Color{C: 100, M: 100},
			AreaFill:   Color{},
			Font:       Color{M: 100, Y: 100},
			BoxFill:    Color{},
			BoxStroke:  Color{K: 100},
		},
		Projection:    nil,
		NormalizeText: true,
		ZoneOffsets:   nil,
	}
}
