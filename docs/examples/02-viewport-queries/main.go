package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

func main() {
	p := gmlbound.NewProcessor(gmlbound.DefaultOptions())
	col := gmlbound.NewCollection()
	if _, err := p.ProcessFile(context.Background(), "13101.gml", col); err != nil {
		log.Fatal(err)
	}

	// Define viewport around the zone IX drawing origin
	viewport := gmlbound.Bounds{
		MinX: 1600, MaxX: 1700,
		MinY: 5500, MaxY: 5600,
	}

	// Query R-tree index for visible primitives (O(log n))
	prims := col.InBounds(viewport)

	fmt.Printf("Visible primitives: %d\n", len(prims))

	for _, prim := range prims {
		fmt.Printf("  %s %s on %s\n", prim.Kind, prim.GroupKey, prim.Layer)
	}
}
