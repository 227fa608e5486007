package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

func process(path string) (*gmlbound.DocumentResult, error) {
	p := gmlbound.NewProcessor(gmlbound.DefaultOptions())

	res, err := p.ProcessFile(context.Background(), path, gmlbound.NewCollection())
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("document not found: %s", path)
		}
		return nil, err
	}

	// Problems inside the document are warnings, not errors
	for _, w := range res.Warnings {
		var fe *gmlbound.FragmentError
		switch {
		case errors.Is(w, gmlbound.ErrNoZoneCode):
			log.Printf("Warning: %s has no EPSG marker; nothing was drawn", path)
		case errors.As(w, &fe):
			log.Printf("Warning: feature %d in %s skipped (%s): %v",
				fe.Index, fe.GroupKey, gmlbound.WarningKind(w), fe.Err)
		}
	}
	if !res.ZoneKnown && res.Zone.Index != 0 {
		log.Printf("Warning: EPSG:%s is not a known zone, placed as zone IX", res.ZoneCode)
	}

	return res, nil
}

func main() {
	res, err := process("13101.gml")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Polygons: %d, labels: %d, warnings: %d\n", res.Polygons, res.Labels, len(res.Warnings))

	// Try a document that does not exist
	_, err = process("missing.gml")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
