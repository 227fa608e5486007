package geodesy

import (
	"sync"

	"github.com/wroge/wgs84"
)

// Projection converts decimal-degree positions into zone-relative plane
// coordinates.
type Projection interface {
	ProjectDegrees(latDeg, lonDeg float64, zone ZoneDefinition) PlanePoint
}

// SeriesProjection is the truncated-series projection (ProjectDegrees).
// It is the default because its output matches existing survey artwork.
type SeriesProjection struct{}

// ProjectDegrees implements Projection.
func (SeriesProjection) ProjectDegrees(latDeg, lonDeg float64, zone ZoneDefinition) PlanePoint {
	return ProjectDegrees(latDeg, lonDeg, zone)
}

// spheroid adapts the GRS80 constants to wgs84.Spheroid.
type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64 {
	return s.a
}
func (s spheroid) Fi() float64 {
	return s.fi
}

// PreciseProjection evaluates the transverse Mercator projection at full
// floating-point precision through github.com/wroge/wgs84.
//
// Results differ from SeriesProjection by millimetres near a zone origin and
// grow with distance; choose it only when compatibility with existing
// artwork does not matter.
type PreciseProjection struct {
	mu     sync.Mutex
	byZone map[string]func(a, b, c float64) (float64, float64, float64)
}

// NewPreciseProjection creates a PreciseProjection.
func NewPreciseProjection() *PreciseProjection {
	return &PreciseProjection{
		byZone: make(map[string]func(a, b, c float64) (float64, float64, float64)),
	}
}

// ProjectDegrees implements Projection.
func (p *PreciseProjection) ProjectDegrees(latDeg, lonDeg float64, zone ZoneDefinition) PlanePoint {
	fn := p.transformer(zone)
	east, north, _ := fn(lonDeg, latDeg, 0)
	return PlanePoint{X: east, Y: north}
}

func (p *PreciseProjection) transformer(zone ZoneDefinition) func(a, b, c float64) (float64, float64, float64) {
	key := zone.OriginLat + "/" + zone.OriginLon

	p.mu.Lock()
	defer p.mu.Unlock()
	if fn, ok := p.byZone[key]; ok {
		return fn
	}

	lat0, lon0, _ := zoneOrigin(zone)
	// JGD2000/JGD2011 plane rectangular: GRS80, k0=0.9999, no false origin.
	jgd := wgs84.Datum{
		Spheroid: spheroid{
			a: SemiMajorAxis, fi: InverseFlattening,
		},
		Area: wgs84.AreaFunc(func(lon, lat float64) bool {
			if lon < 120 || lat < 17 || lon > 157 || lat > 47 {
				return false
			}
			return true
		}),
	}
	proj := jgd.TransverseMercator(lon0, lat0, OriginScale, 0, 0)
	fn := wgs84.Transform(jgd.LonLat(), proj)
	p.byZone[key] = fn
	return fn
}
