package geodesy

import (
	"sort"
)

// DefaultZoneCode is the code whose definition is returned for unknown codes.
//
// Zone IX covers the Kanto region and is the conventional default.
const DefaultZoneCode = "2451"

// ZoneDefinition describes one zone of the Japanese Plane Rectangular
// Coordinate System together with its drawing-space placement.
type ZoneDefinition struct {
	// Index is the zone number, 1 through 19.
	Index int
	// Code is the EPSG code (JGD2000 series, 2443-2461).
	Code string
	// OffsetX and OffsetY place the zone origin in drawing space.
	OffsetX float64
	OffsetY float64
	// OriginLat and OriginLon are the zone origin as "D.MM.SS.ssss".
	OriginLat string
	OriginLon string
}

// zones maps EPSG codes to zone definitions.
// Offsets align neighbouring zones on a shared artboard.
var zones = map[string]ZoneDefinition{
	"2443": {Index: 1, Code: "2443", OffsetX: -3040, OffsetY: 876, OriginLat: "33.00.00.0000", OriginLon: "129.30.00.0000"},
	"2444": {Index: 2, Code: "2444", OffsetX: 6080, OffsetY: -4350, OriginLat: "33.00.00.0000", OriginLon: "131.00.00.0000"},
	"2445": {Index: 3, Code: "2445", OffsetX: 0, OffsetY: 30686, OriginLat: "36.00.00.0000", OriginLon: "132.10.00.0000"},
	"2446": {Index: 4, Code: "2446", OffsetX: 0, OffsetY: 0, OriginLat: "33.00.00.0000", OriginLon: "133.30.00.0000"},
	"2447": {Index: 5, Code: "2447", OffsetX: 0, OffsetY: 0, OriginLat: "36.00.00.0000", OriginLon: "134.20.00.0000"},
	"2448": {Index: 6, Code: "2448", OffsetX: 4050, OffsetY: 24549, OriginLat: "36.00.00.0000", OriginLon: "136.00.00.0000"},
	"2449": {Index: 7, Code: "2449", OffsetX: 3381, OffsetY: 13151, OriginLat: "36.00.00.0000", OriginLon: "137.10.00.0000"},
	"2450": {Index: 8, Code: "2450", OffsetX: 0, OffsetY: 0, OriginLat: "36.00.00.0000", OriginLon: "138.30.00.0000"},
	"2451": {Index: 9, Code: "2451", OffsetX: 1640, OffsetY: 5534, OriginLat: "36.00.00.0000", OriginLon: "139.50.00.0000"},
	"2452": {Index: 10, Code: "2452", OffsetX: 0, OffsetY: 0, OriginLat: "40.00.00.0000", OriginLon: "140.50.00.0000"},
	"2453": {Index: 11, Code: "2453", OffsetX: 0, OffsetY: 0, OriginLat: "44.00.00.0000", OriginLon: "140.15.00.0000"},
	"2454": {Index: 12, Code: "2454", OffsetX: 7637, OffsetY: 13505, OriginLat: "44.00.00.0000", OriginLon: "142.15.00.0000"},
	"2455": {Index: 13, Code: "2455", OffsetX: 0, OffsetY: 0, OriginLat: "44.00.00.0000", OriginLon: "144.15.00.0000"},
	"2456": {Index: 14, Code: "2456", OffsetX: 0, OffsetY: 0, OriginLat: "26.00.00.0000", OriginLon: "142.00.00.0000"},
	"2457": {Index: 15, Code: "2457", OffsetX: -6086, OffsetY: -5260, OriginLat: "26.00.00.0000", OriginLon: "127.30.00.0000"},
	"2458": {Index: 16, Code: "2458", OffsetX: 0, OffsetY: 26468, OriginLat: "26.00.00.0000", OriginLon: "124.00.00.0000"},
	"2459": {Index: 17, Code: "2459", OffsetX: 0, OffsetY: 0, OriginLat: "26.00.00.0000", OriginLon: "131.00.00.0000"},
	"2460": {Index: 18, Code: "2460", OffsetX: 0, OffsetY: 0, OriginLat: "20.00.00.0000", OriginLon: "136.00.00.0000"},
	"2461": {Index: 19, Code: "2461", OffsetX: 0, OffsetY: 0, OriginLat: "26.00.00.0000", OriginLon: "154.00.00.0000"},
}

// LookupZone returns the zone definition for an EPSG code.
//
// Unknown, malformed, or empty codes resolve to the zone IX definition.
// This never fails.
func LookupZone(code string) ZoneDefinition {
	z, _ := ResolveZone(code)
	return z
}

// ResolveZone is LookupZone that also reports whether the code was known,
// so callers can log the fallback.
func ResolveZone(code string) (ZoneDefinition, bool) {
	if z, ok := zones[code]; ok {
		return z, true
	}
	return zones[DefaultZoneCode], false
}

// Zones returns all zone definitions ordered by zone index.
func Zones() []ZoneDefinition {
	result := make([]ZoneDefinition, 0, len(zones))
	for _, z := range zones {
		result = append(result, z)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result
}

// WithOffset returns a copy of the zone placed at a different drawing-space offset.
func (z ZoneDefinition) WithOffset(x, y float64) ZoneDefinition {
	z.OffsetX = x
	z.OffsetY = y
	return z
}
