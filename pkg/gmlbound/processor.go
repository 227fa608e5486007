package gmlbound

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/beetlebugorg/gmlbound/internal/geodesy"
	"github.com/beetlebugorg/gmlbound/internal/logger"
	"github.com/beetlebugorg/gmlbound/internal/parser"
)

// Layer names used by the drawing host for boundaries and town names.
const (
	LayerBoundary = "境界"
	LayerTownName = "町名"
)

// ErrNoZoneCode indicates a document without an "EPSG:" marker.
// Such a document cannot be positioned and produces no output.
var ErrNoZoneCode = errors.New("no EPSG zone code marker")

// PlanarPoint is a position in drawing space.
type PlanarPoint struct {
	X float64
	Y float64
}

// Sink receives drawing primitives as features are processed.
//
// Calls arrive in document order: for each feature its polygon (if any)
// and then its label (if any).
type Sink interface {
	// EmitPolygon receives a closed boundary ring. The ring is not
	// explicitly closed; the last point connects back to the first.
	EmitPolygon(groupKey string, ring []PlanarPoint)

	// EmitLabel receives a town-name label anchored at its centre point.
	EmitLabel(groupKey, text string, anchor PlanarPoint)
}

// LabelBoxSink is implemented by sinks that also draw the box behind labels.
// EmitLabelBox is called immediately before the matching EmitLabel.
type LabelBoxSink interface {
	EmitLabelBox(groupKey string, box LabelBox)
}

// Observer is notified when a document finishes.
type Observer interface {
	DocumentProcessed(result *DocumentResult)
}

// State is the processing state of a document.
type State int

const (
	// StateAwaitZoneCode: searching for the EPSG marker.
	StateAwaitZoneCode State = iota
	// StateProcessingFeatures: zone resolved, emitting features.
	StateProcessingFeatures
	// StateDone: processing has ended.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitZoneCode:
		return "AwaitZoneCode"
	case StateProcessingFeatures:
		return "ProcessingFeatures"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// FragmentError reports a failure confined to one feature fragment.
type FragmentError struct {
	Index    int    // Fragment position in the document, from 0
	GroupKey string // Group the feature belongs to
	Err      error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("feature %d %s: %v", e.Index, e.GroupKey, e.Err)
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}

// DocumentResult summarizes the processing of one document.
type DocumentResult struct {
	Name      string
	State     State
	ZoneCode  string // Code found in the document, possibly empty
	Zone      Zone   // Resolved zone (zone IX on fallback)
	ZoneKnown bool   // False when the zone fell back to the default

	Features        int // Fragments seen
	Polygons        int // Polygons emitted
	Labels          int // Labels emitted
	SkippedGeometry int // Fragments with fewer than two coordinate tokens
	SkippedLabels   int // Fragments without a usable label

	// Warnings are non-fatal problems: ErrNoZoneCode or *FragmentError.
	Warnings []error

	// Bounds covers all emitted points; valid only when HasBounds is true.
	Bounds    Bounds
	HasBounds bool

	Duration time.Duration
}

// Processor converts boundary GML documents into drawing primitives.
//
// A Processor is safe for concurrent use; each call owns its own state.
type Processor struct {
	opts       Options
	extractor  *parser.Extractor
	projection Projection
	log        *slog.Logger
}

// NewProcessor creates a processor.
//
// Zero-valued sizing fields, font type and palette take defaults. A zero
// NormalizeText cannot be told apart from false, so callers should start
// from DefaultOptions and override fields.
func NewProcessor(opts Options) *Processor {
	defaults := DefaultOptions()
	if opts.ScaleFactor == 0 {
		opts.ScaleFactor = defaults.ScaleFactor
	}
	if opts.FontPoint == 0 {
		opts.FontPoint = defaults.FontPoint
	}
	if opts.StrokePoint == 0 {
		opts.StrokePoint = defaults.StrokePoint
	}
	if opts.FontType == "" {
		opts.FontType = defaults.FontType
	}
	if opts.Colors == (Palette{}) {
		opts.Colors = defaults.Colors
	}

	projection := opts.Projection
	if projection == nil {
		projection = SeriesProjection()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		opts:       opts,
		extractor:  parser.NewExtractor(parser.ExtractOptions{NormalizeText: opts.NormalizeText}),
		projection: projection,
		log:        log,
	}
}

// Options returns the effective options.
func (p *Processor) Options() Options {
	return p.opts
}

// ProcessFile reads a document from disk and processes it.
func (p *Processor) ProcessFile(ctx context.Context, path string, sink Sink) (*DocumentResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.Process(ctx, path, data, sink)
}

// Process converts one document, sending primitives to sink.
//
// Problems confined to the document or a single feature are recorded in
// DocumentResult.Warnings and do not return an error. The only error is
// context cancellation, which stops between features.
func (p *Processor) Process(ctx context.Context, name string, doc []byte, sink Sink) (*DocumentResult, error) {
	start := time.Now()
	result := &DocumentResult{Name: name, State: StateAwaitZoneCode}
	log := p.log.With("document", name)

	parsed := parser.ParseDocument(string(doc))
	if !parsed.HasZoneCode {
		result.State = StateDone
		result.Warnings = append(result.Warnings, ErrNoZoneCode)
		result.Duration = time.Since(start)
		log.Warn("document.no_zone_code")
		p.finish(result)
		return result, nil
	}

	zone, known := p.resolveZone(parsed.ZoneCode)
	result.ZoneCode = parsed.ZoneCode
	result.Zone = zone
	result.ZoneKnown = known
	result.State = StateProcessingFeatures
	if !known {
		log.Warn("zone.fallback", "code", parsed.ZoneCode, "zone", zone.Index)
	}

	boxSink, drawsBoxes := sink.(LabelBoxSink)
	styled, drawsStyles := sink.(StyledSink)
	polygonStyle := p.opts.PolygonStyle()
	var acc boundsAccumulator

	for i, fragment := range parsed.Fragments {
		if err := ctx.Err(); err != nil {
			result.State = StateDone
			result.Bounds, result.HasBounds = acc.bounds, acc.any
			result.Duration = time.Since(start)
			log.Info("document.cancelled", "features", result.Features, "polygons", result.Polygons, "labels", result.Labels)
			p.finish(result)
			return result, err
		}
		result.Features++

		feature := p.extractor.Extract(fragment)
		key := feature.GroupKey()

		ring, err := p.ring(feature, zone)
		var insufficient *parser.ErrInsufficientGeometry
		switch {
		case errors.As(err, &insufficient):
			result.SkippedGeometry++
			log.Debug("feature.no_geometry", "index", i, "group", key, "tokens", insufficient.Tokens)
		case err != nil:
			result.Warnings = append(result.Warnings, &FragmentError{Index: i, GroupKey: key, Err: err})
			log.Warn("feature.bad_geometry", "index", i, "group", key, "err", err)
		case drawsStyles:
			styled.EmitStyledPolygon(key, ring, polygonStyle)
			result.Polygons++
			acc.add(pointsBounds(ring))
		default:
			sink.EmitPolygon(key, ring)
			result.Polygons++
			acc.add(pointsBounds(ring))
		}

		if !feature.HasLabel() {
			result.SkippedLabels++
			continue
		}
		anchor, convergence, err := p.anchor(feature, zone)
		if err != nil {
			result.SkippedLabels++
			result.Warnings = append(result.Warnings, &FragmentError{Index: i, GroupKey: key, Err: err})
			log.Warn("feature.bad_anchor", "index", i, "group", key, "err", err)
			continue
		}
		if drawsBoxes {
			box := NewLabelBox(feature.Label, anchor, p.opts.FontPoint)
			box.Fill = p.opts.Colors.BoxFill
			box.Stroke = p.opts.Colors.BoxStroke
			boxSink.EmitLabelBox(key, box)
		}
		if drawsStyles {
			style := p.opts.LabelStyle()
			style.Convergence = convergence
			styled.EmitStyledLabel(key, feature.Label, anchor, style)
		} else {
			sink.EmitLabel(key, feature.Label, anchor)
		}
		result.Labels++
		acc.add(pointsBounds([]PlanarPoint{anchor}))
	}

	result.State = StateDone
	result.Bounds, result.HasBounds = acc.bounds, acc.any
	result.Duration = time.Since(start)
	log.Info("document.done",
		"zone", zone.Index,
		"features", result.Features,
		"polygons", result.Polygons,
		"labels", result.Labels,
		"warnings", len(result.Warnings))
	p.finish(result)
	return result, nil
}

func (p *Processor) finish(result *DocumentResult) {
	if p.opts.Observer != nil {
		p.opts.Observer.DocumentProcessed(result)
	}
}

// resolveZone applies configured offset overrides to the registry entry.
func (p *Processor) resolveZone(code string) (Zone, bool) {
	zone, known := geodesy.ResolveZone(code)
	if off, ok := p.opts.ZoneOffsets[zone.Code]; ok {
		zone = zone.WithOffset(off.X, off.Y)
	}
	return zone, known
}

// ring scales posList coordinates into drawing space.
// posList values are already plane rectangular metres; only the anchor
// goes through the geodetic projection.
func (p *Processor) ring(feature parser.ParsedFeature, zone Zone) ([]PlanarPoint, error) {
	points, err := parser.ParsePoints(feature)
	if err != nil {
		return nil, err
	}
	ring := make([]PlanarPoint, len(points))
	for i, pt := range points {
		ring[i] = p.toDrawing(pt.X, pt.Y, zone)
	}
	return ring, nil
}

// anchor projects the representative point (Y_CODE latitude, X_CODE longitude)
// and returns the meridian convergence there in degrees.
func (p *Processor) anchor(feature parser.ParsedFeature, zone Zone) (PlanarPoint, float64, error) {
	lat, err := geodesy.ParseCoordinate(feature.AnchorY)
	if err != nil {
		return PlanarPoint{}, 0, fmt.Errorf("anchor latitude: %w", err)
	}
	lon, err := geodesy.ParseCoordinate(feature.AnchorX)
	if err != nil {
		return PlanarPoint{}, 0, fmt.Errorf("anchor longitude: %w", err)
	}
	plane := p.projection.ProjectDegrees(lat, lon, zone)
	convergence := geodesy.RadToDeg(geodesy.Convergence(lat, lon, zone))
	return p.toDrawing(plane.X, plane.Y, zone), convergence, nil
}

func (p *Processor) toDrawing(x, y float64, zone Zone) PlanarPoint {
	return PlanarPoint{
		X: x*p.opts.ScaleFactor + zone.OffsetX,
		Y: y*p.opts.ScaleFactor + zone.OffsetY,
	}
}

// WarningKind classifies a warning for metrics and reports.
func WarningKind(err error) string {
	var (
		malformed *geodesy.ErrMalformedAngle
		invalid   *parser.ErrInvalidCoordinate
	)
	switch {
	case errors.Is(err, ErrNoZoneCode):
		return "no_zone_code"
	case errors.As(err, &malformed):
		return "malformed_angle"
	case errors.As(err, &invalid):
		return "invalid_coordinate"
	default:
		return "other"
	}
}
