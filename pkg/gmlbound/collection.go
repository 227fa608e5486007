package gmlbound

import (
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
)

// PrimitiveKind identifies what a recorded primitive draws.
type PrimitiveKind int

const (
	KindPolygon PrimitiveKind = iota
	KindLabelBox
	KindLabel
)

// String returns the kind name.
func (k PrimitiveKind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindLabelBox:
		return "labelbox"
	case KindLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Primitive is one recorded drawing instruction.
type Primitive struct {
	Seq      int // Emission order within the collection
	Kind     PrimitiveKind
	Layer    string
	GroupKey string
	Ring     []PlanarPoint // KindPolygon
	Text     string        // KindLabel
	Anchor   PlanarPoint   // KindLabel
	Box      LabelBox      // KindLabelBox

	// Styles are zero when emitted through the plain Sink methods.
	PolygonStyle PolygonStyle // KindPolygon
	LabelStyle   LabelStyle   // KindLabel
}

// Extent returns the drawing-space bounds of the primitive.
func (p Primitive) Extent() Bounds {
	switch p.Kind {
	case KindPolygon:
		return pointsBounds(p.Ring)
	case KindLabelBox:
		return p.Box.Bounds()
	default:
		return pointsBounds([]PlanarPoint{p.Anchor})
	}
}

// Collection is an in-memory Sink that records primitives in order.
//
// It is safe for concurrent use, so one Collection may serve a whole batch.
// Spatial queries use an R-tree built on first use and rebuilt after
// further emissions.
type Collection struct {
	mu         sync.Mutex
	primitives []Primitive
	rtree      *rtreego.Rtree
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// EmitPolygon implements Sink. The ring is copied.
func (c *Collection) EmitPolygon(groupKey string, ring []PlanarPoint) {
	c.EmitStyledPolygon(groupKey, ring, PolygonStyle{})
}

// EmitLabel implements Sink.
func (c *Collection) EmitLabel(groupKey, text string, anchor PlanarPoint) {
	c.EmitStyledLabel(groupKey, text, anchor, LabelStyle{})
}

// EmitStyledPolygon implements StyledSink. The ring is copied.
func (c *Collection) EmitStyledPolygon(groupKey string, ring []PlanarPoint, style PolygonStyle) {
	c.record(Primitive{
		Kind:         KindPolygon,
		Layer:        LayerBoundary,
		GroupKey:     groupKey,
		Ring:         append([]PlanarPoint(nil), ring...),
		PolygonStyle: style,
	})
}

// EmitStyledLabel implements StyledSink.
func (c *Collection) EmitStyledLabel(groupKey, text string, anchor PlanarPoint, style LabelStyle) {
	c.record(Primitive{
		Kind:       KindLabel,
		Layer:      LayerTownName,
		GroupKey:   groupKey,
		Text:       text,
		Anchor:     anchor,
		LabelStyle: style,
	})
}

// EmitLabelBox implements LabelBoxSink.
func (c *Collection) EmitLabelBox(groupKey string, box LabelBox) {
	c.record(Primitive{
		Kind:     KindLabelBox,
		Layer:    LayerTownName,
		GroupKey: groupKey,
		Box:      box,
	})
}

func (c *Collection) record(p Primitive) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p.Seq = len(c.primitives)
	c.primitives = append(c.primitives, p)
	c.rtree = nil
}

// Len returns the number of recorded primitives.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.primitives)
}

// Primitives returns a copy of all primitives in emission order.
func (c *Collection) Primitives() []Primitive {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Primitive(nil), c.primitives...)
}

// Polygons returns the boundary rings of a group in emission order.
func (c *Collection) Polygons(groupKey string) [][]PlanarPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	var rings [][]PlanarPoint
	for _, p := range c.primitives {
		if p.Kind == KindPolygon && p.GroupKey == groupKey {
			rings = append(rings, p.Ring)
		}
	}
	return rings
}

// Groups returns the distinct group keys in order of first appearance.
func (c *Collection) Groups() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]bool)
	var groups []string
	for _, p := range c.primitives {
		if !seen[p.GroupKey] {
			seen[p.GroupKey] = true
			groups = append(groups, p.GroupKey)
		}
	}
	return groups
}

// Bounds returns the union of all primitive extents.
// The second result is false for an empty collection.
func (c *Collection) Bounds() (Bounds, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var acc boundsAccumulator
	for _, p := range c.primitives {
		acc.add(p.Extent())
	}
	return acc.bounds, acc.any
}

// InBounds returns primitives whose extent intersects bounds, in emission order.
func (c *Collection) InBounds(bounds Bounds) []Primitive {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.primitives) == 0 {
		return nil
	}
	if c.rtree == nil {
		c.buildIndex()
	}

	var result []Primitive
	for _, spatial := range c.rtree.SearchIntersect(boundsRect(bounds)) {
		p := c.primitives[spatial.(indexedPrimitive).seq]
		// Epsilon padding can admit near misses.
		if p.Extent().Intersects(bounds) {
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Seq < result[j].Seq
	})
	return result
}

// inBoundsLinear is the reference scan used to check the R-tree.
func (c *Collection) inBoundsLinear(bounds Bounds) []Primitive {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []Primitive
	for _, p := range c.primitives {
		if p.Extent().Intersects(bounds) {
			result = append(result, p)
		}
	}
	return result
}

func (c *Collection) buildIndex() {
	// Create R-tree (2D, min=25 children, max=50 children)
	c.rtree = rtreego.NewTree(2, 25, 50)
	for _, p := range c.primitives {
		c.rtree.Insert(indexedPrimitive{seq: p.Seq, rect: boundsRect(p.Extent())})
	}
}

// indexedPrimitive adapts a primitive to rtreego.Spatial.
type indexedPrimitive struct {
	seq  int
	rect rtreego.Rect
}

func (i indexedPrimitive) Bounds() rtreego.Rect {
	return i.rect
}

// boundsRect converts drawing bounds to an R-tree rectangle.
func boundsRect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinX, b.MinY}
	width := b.MaxX - b.MinX
	height := b.MaxY - b.MinY

	// rtreego rejects zero lengths; points and axis-aligned segments get a sliver.
	const epsilon = 1e-6
	if width < epsilon {
		width = epsilon
	}
	if height < epsilon {
		height = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}
