package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gmlbound/internal/config"
	"github.com/beetlebugorg/gmlbound/internal/logger"
	"github.com/beetlebugorg/gmlbound/internal/metrics"
	"github.com/beetlebugorg/gmlbound/pkg/gmlbound"
)

func convertCmd(root *rootFlags) *cobra.Command {
	var format string
	var output string
	var workers int
	var precise bool
	var stopOnError bool
	var metricsFile string

	c := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert GML boundary documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			if err := config.LoadDotEnv(root.envFile); err != nil {
				return err
			}
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if root.debug {
				cfg.LogLevel = "debug"
			}
			if precise {
				cfg.Projection = config.ProjectionPrecise
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			log := logger.Setup(logger.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Writer: cmd.ErrOrStderr(),
			})

			rec := metrics.NewRecorder()
			opts := cfg.Options(log)
			opts.Observer = rec
			p := gmlbound.NewProcessor(opts)

			var col *gmlbound.Collection
			var geo *gmlbound.GeoJSONSink
			var sink gmlbound.Sink
			switch format {
			case "geojson":
				geo = gmlbound.NewGeoJSONSink()
				sink = geo
			case "json", "summary", "":
				col = gmlbound.NewCollection()
				sink = col
			default:
				return fmt.Errorf("unsupported format %q (expected summary|json|geojson)", format)
			}

			batch := gmlbound.DefaultBatchOptions()
			batch.Workers = cfg.Workers
			batch.SkipErrors = !stopOnError
			batch.ErrorLog = cmd.ErrOrStderr()

			res, errs := gmlbound.ProcessFiles(cmd.Context(), p, paths,
				func(string) gmlbound.Sink { return sink }, batch)

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "geojson":
				err = writeGeoJSON(w, geo)
			case "json":
				err = writeJSON(w, res, col)
			default:
				printSummary(w, res)
			}
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if err := rec.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			// Completion goes to stderr so it never mixes with encoded output.
			fmt.Fprintf(cmd.ErrOrStderr(), "Completed %d of %d document(s): %d polygon(s), %d label(s), %d warning(s)\n",
				len(res.Documents), len(paths), res.Polygons, res.Labels, res.Warnings)

			if len(errs) > 0 {
				return fmt.Errorf("%d document(s) failed", len(errs))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "summary", "Output format: summary|json|geojson")
	c.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")
	c.Flags().IntVarP(&workers, "workers", "j", 0, "Parallel document workers (0 = number of CPUs)")
	c.Flags().BoolVar(&precise, "precise", false, "Project label anchors with full-precision transverse Mercator")
	c.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first unreadable document")
	c.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus text metrics to this file")
	return c
}

func printSummary(w io.Writer, res *gmlbound.BatchResult) {
	fmt.Fprintf(w, "Run ID: %s\n", res.RunID)
	for _, doc := range res.Documents {
		zone := "-"
		if doc.Zone.Index != 0 {
			zone = fmt.Sprintf("%d", doc.Zone.Index)
			if !doc.ZoneKnown {
				zone += " (fallback)"
			}
		}
		fmt.Fprintf(w, "- %s zone=%s features=%d polygons=%d labels=%d\n",
			doc.Name, zone, doc.Features, doc.Polygons, doc.Labels)
		for _, warning := range doc.Warnings {
			fmt.Fprintf(w, "    warning: %v\n", warning)
		}
	}
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonPrimitive struct {
	Kind   string      `json:"kind"`
	Layer  string      `json:"layer"`
	Group  string      `json:"group"`
	Ring   []jsonPoint `json:"ring,omitempty"`
	Text   string      `json:"text,omitempty"`
	Anchor *jsonPoint  `json:"anchor,omitempty"`
	Box    *jsonBox    `json:"box,omitempty"`
	Style  *jsonStyle  `json:"style,omitempty"`
}

type jsonBox struct {
	Left        float64    `json:"left"`
	Top         float64    `json:"top"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	StrokeWidth float64    `json:"stroke_width"`
	Fill        [4]float64 `json:"fill"`
	Stroke      [4]float64 `json:"stroke"`
}

// jsonStyle carries polygon or label styling; colors are [c, m, y, k].
type jsonStyle struct {
	Stroke      *[4]float64 `json:"stroke,omitempty"`
	Fill        *[4]float64 `json:"fill,omitempty"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
	Font        string      `json:"font,omitempty"`
	FontSize    float64     `json:"font_size,omitempty"`
	Color       *[4]float64 `json:"color,omitempty"`
	Convergence float64     `json:"convergence,omitempty"`
}

func cmyk(c gmlbound.Color) [4]float64 {
	return [4]float64{c.C, c.M, c.Y, c.K}
}

type jsonDocument struct {
	Name      string   `json:"name"`
	ZoneCode  string   `json:"zone_code"`
	Zone      int      `json:"zone"`
	ZoneKnown bool     `json:"zone_known"`
	Features  int      `json:"features"`
	Polygons  int      `json:"polygons"`
	Labels    int      `json:"labels"`
	Warnings  []string `json:"warnings,omitempty"`
}

func writeJSON(w io.Writer, res *gmlbound.BatchResult, col *gmlbound.Collection) error {
	docs := make([]jsonDocument, 0, len(res.Documents))
	for _, d := range res.Documents {
		doc := jsonDocument{
			Name:      d.Name,
			ZoneCode:  d.ZoneCode,
			Zone:      d.Zone.Index,
			ZoneKnown: d.ZoneKnown,
			Features:  d.Features,
			Polygons:  d.Polygons,
			Labels:    d.Labels,
		}
		for _, warning := range d.Warnings {
			doc.Warnings = append(doc.Warnings, warning.Error())
		}
		docs = append(docs, doc)
	}

	prims := col.Primitives()
	out := make([]jsonPrimitive, 0, len(prims))
	for _, p := range prims {
		jp := jsonPrimitive{Kind: p.Kind.String(), Layer: p.Layer, Group: p.GroupKey}
		switch p.Kind {
		case gmlbound.KindPolygon:
			jp.Ring = make([]jsonPoint, len(p.Ring))
			for i, pt := range p.Ring {
				jp.Ring[i] = jsonPoint{X: pt.X, Y: pt.Y}
			}
			stroke, fill := cmyk(p.PolygonStyle.Stroke), cmyk(p.PolygonStyle.Fill)
			jp.Style = &jsonStyle{Stroke: &stroke, Fill: &fill, StrokeWidth: p.PolygonStyle.StrokeWidth}
		case gmlbound.KindLabel:
			jp.Text = p.Text
			jp.Anchor = &jsonPoint{X: p.Anchor.X, Y: p.Anchor.Y}
			color := cmyk(p.LabelStyle.Color)
			jp.Style = &jsonStyle{
				Font:        p.LabelStyle.Font,
				FontSize:    p.LabelStyle.Size,
				Color:       &color,
				Convergence: p.LabelStyle.Convergence,
			}
		case gmlbound.KindLabelBox:
			jp.Box = &jsonBox{
				Left:        p.Box.Left,
				Top:         p.Box.Top,
				Width:       p.Box.Width,
				Height:      p.Box.Height,
				StrokeWidth: p.Box.StrokeWidth,
				Fill:        cmyk(p.Box.Fill),
				Stroke:      cmyk(p.Box.Stroke),
			}
		}
		out = append(out, jp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"run_id":     res.RunID,
		"completed":  res.Completed,
		"documents":  docs,
		"primitives": out,
	})
}

func writeGeoJSON(w io.Writer, sink *gmlbound.GeoJSONSink) error {
	b, err := sink.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
