package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

func main() {
	paths, err := filepath.Glob("data/*.gml")
	if err != nil {
		log.Fatal(err)
	}

	p := gmlbound.NewProcessor(gmlbound.DefaultOptions())
	col := gmlbound.NewCollection()

	opts := gmlbound.DefaultBatchOptions()
	opts.ErrorLog = os.Stderr
	opts.Progress = func(processed, total int) {
		fmt.Printf("\rProcessing: %d/%d", processed, total)
	}

	// All documents share one goroutine-safe collection
	res, errs := gmlbound.ProcessFiles(context.Background(), p, paths,
		func(string) gmlbound.Sink { return col }, opts)
	fmt.Println()
	if len(errs) > 0 {
		fmt.Printf("Skipped %d document(s) due to errors\n", len(errs))
	}

	// Index documents by drawing-space coverage
	idx := gmlbound.BuildIndex(res.Documents)
	fmt.Printf("Indexed %d of %d documents (run %s)\n", idx.Count(), len(paths), res.RunID)

	region := gmlbound.Bounds{MinX: 1500, MaxX: 2000, MinY: 5000, MaxY: 6000}
	for _, entry := range idx.Query(region) {
		fmt.Printf("  %s zone %d: %d polygons\n", entry.Name, entry.Zone, entry.Polygons)
	}
}
