package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func evalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval " + inputArgs,
		Short: "Print the total cost of the design",
		Long: `Print the root's total cost: the rolled-up per-unit cost plus the
per-unit share of NRE. A design whose yield degenerates to zero prints +Inf.`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.files(args)
			if err != nil {
				return err
			}
			d, err := a.evaluate(files)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatCost(d.TotalCost()))
			return err
		},
	}
}

func formatCost(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func describeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe " + inputArgs,
		Short: "Print every derived attribute of every die",
		Args:  cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.files(args)
			if err != nil {
				return err
			}
			d, err := a.evaluate(files)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), d.String())
			return err
		},
	}
}
