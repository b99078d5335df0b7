package analysis

import (
	"fmt"
	"io"
	"text/tabwriter"
)

var zoneNames = [4]string{"Núcleo Central", "Zona Periférica 1", "Zona Periférica 2", "Zona Periférica 3"}

// RenderTable prints the zone-count table of a report.
func RenderTable(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	counts := r.Counts()

	for i := range zoneNames {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, "\tNº de Palavras")
	}
	fmt.Fprintln(tw)
	for i, name := range zoneNames {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprintf(tw, "%s\t%d", name, counts[i])
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}
