package sweep

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

func (r *Report) order() {
	sort.SliceStable(r.Results, func(i, j int) bool {
		a, b := math.Abs(r.Results[i].Sensitivity), math.Abs(r.Results[j].Sensitivity)
		if a != b {
			return a > b
		}
		return r.Results[i].Parameter < r.Results[j].Parameter
	})
	sort.SliceStable(r.Errors, func(i, j int) bool {
		return r.Errors[i].Parameter < r.Errors[j].Parameter
	})
}

// WriteText writes the report as an aligned table followed by the failed
// parameters.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "run %s: base cost %.6g, perturbation %g%%\n\n", r.RunID, r.BaseCost, r.Percent); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tDIRECTION\tBASE\tPERTURBED\tSENSITIVITY")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%.4f\n", res.Parameter, res.Direction, res.Base, res.Perturbed, res.Sensitivity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Errors) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nErrors:"); err != nil {
		return err
	}
	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "  %s (base %g): %s\n", e.Parameter, e.Base, e.Message); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML encodes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
