package gmlbound

// Bounds is an axis-aligned box in drawing space.
type Bounds struct {
	MinX float64 // Left edge
	MaxX float64 // Right edge
	MinY float64 // Bottom edge
	MaxY float64 // Top edge
}

// Contains returns true if the point is within the bounds.
func (b Bounds) Contains(p PlanarPoint) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, other.MinX),
		MaxX: max(b.MaxX, other.MaxX),
		MinY: min(b.MinY, other.MinY),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// pointsBounds calculates the bounding box of a set of points.
func pointsBounds(points []PlanarPoint) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	first := points[0]
	bounds := Bounds{
		MinX: first.X,
		MaxX: first.X,
		MinY: first.Y,
		MaxY: first.Y,
	}
	for _, p := range points[1:] {
		bounds = bounds.Union(Bounds{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y})
	}
	return bounds
}

// boundsAccumulator grows a bounding box as points arrive.
type boundsAccumulator struct {
	bounds Bounds
	any    bool
}

func (a *boundsAccumulator) add(b Bounds) {
	if !a.any {
		a.bounds = b
		a.any = true
		return
	}
	a.bounds = a.bounds.Union(b)
}
