package gmlbound

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// DocumentIndex provides spatial queries over processed documents.
//
// Each entry carries the drawing-space bounds of one document, so a caller
// can pick the documents that cover part of the artboard without
// reprocessing them.
//
// Example:
//
//	res, _ := gmlbound.ProcessFiles(ctx, p, paths, factory, opts)
//	idx := gmlbound.BuildIndex(res.Documents)
//	for _, e := range idx.Query(gmlbound.Bounds{MinX: 0, MaxX: 500, MinY: 0, MaxY: 500}) {
//	    fmt.Println(e.Name, e.Polygons)
//	}
type DocumentIndex struct {
	entries []DocumentEntry
	rtree   *rtreego.Rtree
}

// DocumentEntry is the indexed metadata for one document.
type DocumentEntry struct {
	Name     string
	ZoneCode string
	Zone     int    // Zone index, 1..19
	Extent   Bounds // Drawing-space coverage
	Polygons int
	Labels   int
}

// Bounds method for rtreego.Spatial interface.
func (e DocumentEntry) Bounds() rtreego.Rect {
	return boundsRect(e.Extent)
}

// BuildIndex indexes documents that produced output. Documents without
// bounds, such as those missing a zone marker, are left out.
func BuildIndex(docs []*DocumentResult) *DocumentIndex {
	idx := &DocumentIndex{rtree: rtreego.NewTree(2, 25, 50)}
	for _, doc := range docs {
		if doc == nil || !doc.HasBounds {
			continue
		}
		entry := DocumentEntry{
			Name:     doc.Name,
			ZoneCode: doc.ZoneCode,
			Zone:     doc.Zone.Index,
			Extent:   doc.Bounds,
			Polygons: doc.Polygons,
			Labels:   doc.Labels,
		}
		idx.entries = append(idx.entries, entry)
		idx.rtree.Insert(entry)
	}
	return idx
}

// Query returns documents intersecting bounds, sorted by name.
func (idx *DocumentIndex) Query(bounds Bounds) []DocumentEntry {
	var result []DocumentEntry
	for _, spatial := range idx.rtree.SearchIntersect(boundsRect(bounds)) {
		entry := spatial.(DocumentEntry)
		if entry.Extent.Intersects(bounds) {
			result = append(result, entry)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Count returns the number of indexed documents.
func (idx *DocumentIndex) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all document bounds.
func (idx *DocumentIndex) Bounds() Bounds {
	if len(idx.entries) == 0 {
		return Bounds{}
	}
	bounds := idx.entries[0].Extent
	for _, e := range idx.entries[1:] {
		bounds = bounds.Union(e.Extent)
	}
	return bounds
}

// All returns all entries in insertion order.
func (idx *DocumentIndex) All() []DocumentEntry {
	return idx.entries
}
