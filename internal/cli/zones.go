package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gmlbound/internal/geodesy"
)

func zonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the Plane Rectangular Coordinate System zones and their drawing offsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printZones(cmd.OutOrStdout())
		},
	}
}

func printZones(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ZONE\tEPSG\tORIGIN LAT\tORIGIN LON\tOFFSET X\tOFFSET Y")
	for _, z := range geodesy.Zones() {
		lat, err := geodesy.ToDecimalDegrees(z.OriginLat)
		if err != nil {
			return err
		}
		lon, err := geodesy.ToDecimalDegrees(z.OriginLon)
		if err != nil {
			return err
		}
		marker := ""
		if z.Code == geodesy.DefaultZoneCode {
			marker = " (default)"
		}
		// Origins are printed in canonical form from the decoded value.
		fmt.Fprintf(tw, "%d\t%s%s\t%s (%.6f)\t%s (%.6f)\t%g\t%g\n",
			z.Index, z.Code, marker,
			geodesy.FormatSexagesimal(lat), lat, geodesy.FormatSexagesimal(lon), lon,
			z.OffsetX, z.OffsetY)
	}
	return tw.Flush()
}
