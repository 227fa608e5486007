package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

func main() {
	// Create processor with default scale, fonts and colors
	p := gmlbound.NewProcessor(gmlbound.DefaultOptions())

	// Record primitives in memory
	col := gmlbound.NewCollection()
	res, err := p.ProcessFile(context.Background(), "13101.gml", col)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Zone: %d (EPSG:%s)\n", res.Zone.Index, res.Zone.Code)
	fmt.Printf("Features: %d\n", res.Features)
	fmt.Printf("Polygons: %d, labels: %d\n", res.Polygons, res.Labels)

	for _, group := range col.Groups() {
		fmt.Printf("  %s: %d polygon(s)\n", group, len(col.Polygons(group)))
	}
}
