package gmlbound

// PolygonStyle is the outline and fill of a boundary ring.
type PolygonStyle struct {
	Stroke      Color
	Fill        Color
	StrokeWidth float64 // Points
}

// LabelStyle describes how a town-name label is set.
type LabelStyle struct {
	Font  string
	Size  float64 // Points
	Color Color

	// Convergence is the meridian convergence at the anchor in degrees,
	// positive when grid north lies east of true north. Hosts that
	// align text with true north rotate by this angle.
	Convergence float64
}

// StyledSink is implemented by sinks that draw with the configured styles.
//
// When a sink implements StyledSink the processor calls these methods in
// place of EmitPolygon and EmitLabel. LabelBoxSink still applies.
type StyledSink interface {
	Sink
	EmitStyledPolygon(groupKey string, ring []PlanarPoint, style PolygonStyle)
	EmitStyledLabel(groupKey, text string, anchor PlanarPoint, style LabelStyle)
}

// PolygonStyle returns the style applied to boundary rings.
func (o Options) PolygonStyle() PolygonStyle {
	return PolygonStyle{
		Stroke:      o.Colors.AreaStroke,
		Fill:        o.Colors.AreaFill,
		StrokeWidth: o.StrokePoint,
	}
}

// LabelStyle returns the style applied to labels, without convergence.
func (o Options) LabelStyle() LabelStyle {
	return LabelStyle{
		Font:  o.FontType,
		Size:  o.FontPoint,
		Color: o.Colors.Font,
	}
}

// cmyk lists the components in C, M, Y, K order.
func (c Color) cmyk() []float64 {
	return []float64{c.C, c.M, c.Y, c.K}
}
