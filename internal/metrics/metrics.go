// Package metrics counts processing outcomes with Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

// Recorder holds the collectors on a private registry, so several
// recorders can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	DocumentsTotal     *prometheus.CounterVec
	FeaturesTotal      prometheus.Counter
	PolygonsTotal      prometheus.Counter
	LabelsTotal        prometheus.Counter
	SkippedTotal       *prometheus.CounterVec
	WarningsTotal      *prometheus.CounterVec
	ZoneFallbacksTotal prometheus.Counter
	DocumentDurationMs prometheus.Histogram
}

// NewRecorder creates and registers the collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		DocumentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmlbound_documents_total",
			Help: "Documents processed by zone index",
		}, []string{"zone"}),
		FeaturesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gmlbound_features_total",
			Help: "Feature fragments seen",
		}),
		PolygonsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gmlbound_polygons_total",
			Help: "Boundary polygons emitted",
		}),
		LabelsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gmlbound_labels_total",
			Help: "Town-name labels emitted",
		}),
		SkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmlbound_skipped_total",
			Help: "Fragments without a polygon or label",
		}, []string{"what"}),
		WarningsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmlbound_warnings_total",
			Help: "Non-fatal problems by kind",
		}, []string{"kind"}),
		ZoneFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gmlbound_zone_fallbacks_total",
			Help: "Documents whose EPSG code fell back to zone IX",
		}),
		DocumentDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gmlbound_document_duration_ms",
			Help:    "Per-document processing time in milliseconds",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
		}),
	}

	r.registry.MustRegister(
		r.DocumentsTotal,
		r.FeaturesTotal,
		r.PolygonsTotal,
		r.LabelsTotal,
		r.SkippedTotal,
		r.WarningsTotal,
		r.ZoneFallbacksTotal,
		r.DocumentDurationMs,
	)
	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// DocumentProcessed implements gmlbound.Observer.
func (r *Recorder) DocumentProcessed(res *gmlbound.DocumentResult) {
	// Zone is unset when the document had no EPSG marker.
	zone := "none"
	if res.Zone.Index != 0 {
		zone = res.Zone.Code
	}
	r.DocumentsTotal.WithLabelValues(zone).Inc()
	r.FeaturesTotal.Add(float64(res.Features))
	r.PolygonsTotal.Add(float64(res.Polygons))
	r.LabelsTotal.Add(float64(res.Labels))
	r.SkippedTotal.WithLabelValues("geometry").Add(float64(res.SkippedGeometry))
	r.SkippedTotal.WithLabelValues("label").Add(float64(res.SkippedLabels))
	for _, w := range res.Warnings {
		r.WarningsTotal.WithLabelValues(gmlbound.WarningKind(w)).Inc()
	}
	if res.Zone.Index != 0 && !res.ZoneKnown {
		r.ZoneFallbacksTotal.Inc()
	}
	r.DocumentDurationMs.Observe(float64(res.Duration.Microseconds()) / 1000)
}

// WriteTextfile writes the text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
