// Package gmlbound converts Japanese administrative boundary GML into
// drawing-space primitives.
//
// Input documents are FME exports of town and district boundaries. Each
// gml:featureMember carries a posList ring in Plane Rectangular
// Coordinate System metres, the district name attributes,
// a town label, and a representative point in geodetic degrees.
//
// A Processor finds the document's EPSG zone, scales each ring into
// drawing units, projects each representative point through the zone's
// transverse Mercator series, and hands the results to a Sink in document
// order:
//
//	p := gmlbound.NewProcessor(gmlbound.DefaultOptions())
//	col := gmlbound.NewCollection()
//	res, err := p.ProcessFile(ctx, "13101.gml", col)
//	if err != nil {
//	    return err
//	}
//	for _, group := range col.Groups() {
//	    fmt.Println(group, len(col.Polygons(group)))
//	}
//	fmt.Println(res.Polygons, "polygons,", len(res.Warnings), "warnings")
//
// Group keys join the three name attributes inside 【】 brackets, so all
// polygons of a district share one key.
//
// Drawing space has Y growing upward. Each zone's origin lands at that
// zone's fixed drawing offset, so documents from the same zone line up on
// one artboard.
package gmlbound
