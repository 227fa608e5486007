package gmlbound

import (
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSONSink collects primitives into a GeoJSON FeatureCollection.
//
// Coordinates are drawing-space units, not longitude and latitude.
// Boundary rings and label boxes become Polygon features; labels become
// Point features. Every feature carries "kind", "group" and "layer"
// properties. Styled emissions add the drawing style, with colors as
// [c, m, y, k] arrays.
type GeoJSONSink struct {
	mu sync.Mutex
	fc *geojson.FeatureCollection
}

// NewGeoJSONSink creates an empty sink.
func NewGeoJSONSink() *GeoJSONSink {
	return &GeoJSONSink{fc: geojson.NewFeatureCollection()}
}

// EmitPolygon implements Sink.
func (s *GeoJSONSink) EmitPolygon(groupKey string, ring []PlanarPoint) {
	s.append(polygonFeature(groupKey, ring))
}

// EmitLabel implements Sink.
func (s *GeoJSONSink) EmitLabel(groupKey, text string, anchor PlanarPoint) {
	s.append(labelFeature(groupKey, text, anchor))
}

// EmitStyledPolygon implements StyledSink.
func (s *GeoJSONSink) EmitStyledPolygon(groupKey string, ring []PlanarPoint, style PolygonStyle) {
	f := polygonFeature(groupKey, ring)
	f.Properties["stroke"] = style.Stroke.cmyk()
	f.Properties["fill"] = style.Fill.cmyk()
	f.Properties["stroke_width"] = style.StrokeWidth
	s.append(f)
}

// EmitStyledLabel implements StyledSink.
func (s *GeoJSONSink) EmitStyledLabel(groupKey, text string, anchor PlanarPoint, style LabelStyle) {
	f := labelFeature(groupKey, text, anchor)
	f.Properties["font"] = style.Font
	f.Properties["font_size"] = style.Size
	f.Properties["color"] = style.Color.cmyk()
	f.Properties["convergence"] = style.Convergence
	s.append(f)
}

// EmitLabelBox implements LabelBoxSink.
func (s *GeoJSONSink) EmitLabelBox(groupKey string, box LabelBox) {
	b := box.Bounds()
	ring := orb.Ring{
		{b.MinX, b.MinY}, {b.MaxX, b.MinY}, {b.MaxX, b.MaxY}, {b.MinX, b.MaxY}, {b.MinX, b.MinY},
	}
	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties["kind"] = KindLabelBox.String()
	f.Properties["group"] = groupKey
	f.Properties["layer"] = LayerTownName
	f.Properties["fill"] = box.Fill.cmyk()
	f.Properties["stroke"] = box.Stroke.cmyk()
	f.Properties["stroke_width"] = box.StrokeWidth
	s.append(f)
}

func polygonFeature(groupKey string, ring []PlanarPoint) *geojson.Feature {
	r := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		r = append(r, orb.Point{p.X, p.Y})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}

	f := geojson.NewFeature(orb.Polygon{r})
	f.Properties["kind"] = KindPolygon.String()
	f.Properties["group"] = groupKey
	f.Properties["layer"] = LayerBoundary
	return f
}

func labelFeature(groupKey, text string, anchor PlanarPoint) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{anchor.X, anchor.Y})
	f.Properties["kind"] = KindLabel.String()
	f.Properties["group"] = groupKey
	f.Properties["layer"] = LayerTownName
	f.Properties["label"] = text
	return f
}

func (s *GeoJSONSink) append(f *geojson.Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fc.Append(f)
}

// FeatureCollection returns the collected features.
func (s *GeoJSONSink) FeatureCollection() *geojson.FeatureCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fc
}

// Bound returns the extent of all collected geometry.
func (s *GeoJSONSink) Bound() orb.Bound {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fc.Features) == 0 {
		return orb.Bound{}
	}
	bound := s.fc.Features[0].Geometry.Bound()
	for _, f := range s.fc.Features[1:] {
		bound = bound.Union(f.Geometry.Bound())
	}
	return bound
}

// MarshalJSON encodes the feature collection.
func (s *GeoJSONSink) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fc.MarshalJSON()
}
