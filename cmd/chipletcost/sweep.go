package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/chiplet/loader"
	"github.com/katalvlaran/chiplet/sweep"
)

func sweepCmd(a *app) *cobra.Command {
	var (
		percent  float64
		workers  int
		format   string
		textfile string
	)
	cmd := &cobra.Command{
		Use:   "sweep " + inputArgs,
		Short: "Rank every numeric input by its effect on total cost",
		Args:  cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := &a.cfg.Sweep
			flags := cmd.Flags()
			if flags.Changed("percent") {
				sc.Percent = percent
			}
			if flags.Changed("workers") {
				sc.Workers = workers
			}
			if flags.Changed("format") {
				sc.Format = format
			}
			if flags.Changed("metrics-textfile") {
				sc.MetricsTextfile = textfile
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			files, err := a.files(args)
			if err != nil {
				return err
			}
			docs, err := loader.Read(files)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			rep, err := sweep.Run(cmd.Context(), docs,
				sweep.WithPercent(sc.Percent),
				sweep.WithWorkers(sc.Workers),
				sweep.WithRegisterer(reg),
				sweep.WithLogger(a.log))
			if err != nil {
				return err
			}
			if sc.MetricsTextfile != "" {
				if err := prometheus.WriteToTextfile(sc.MetricsTextfile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			if sc.Format == "yaml" {
				return rep.WriteYAML(cmd.OutOrStdout())
			}
			return rep.WriteText(cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Float64Var(&percent, "percent", 1, "Perturbation size in percent")
	f.IntVar(&workers, "workers", 1, "Concurrent trials")
	f.StringVar(&format, "format", "text", "Report format (text, yaml)")
	f.StringVar(&textfile, "metrics-textfile", "", "Write Prometheus metrics to this file")
	return cmd
}
