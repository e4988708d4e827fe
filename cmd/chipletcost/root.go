package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/chiplet/config"
	"github.com/katalvlaran/chiplet/die"
	"github.com/katalvlaran/chiplet/loader"
)

const inputArgs = "<io> <layer> <wafer> <assembly> <test> <netlist> <design>"

// app carries global flags and the state derived from them.
type app struct {
	configPath  string
	logLevel    string
	library     string
	parallelism int

	cfg *config.Config
	log *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "chipletcost",
		Short: "Chiplet assembly cost, yield, area and power estimator",
		Long: `chipletcost evaluates a stacked chiplet design described by seven YAML
documents: IO, layer, wafer process, assembly process and test process
catalogs, a netlist, and the die tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.library, "library", "", "Directory of extra catalog documents")
	pf.IntVar(&a.parallelism, "parallelism", 1, "Concurrent sibling builds per evaluation")

	cmd.AddCommand(evalCmd(a), describeCmd(a), sweepCmd(a), watchCmd(a))
	return cmd
}

// setup loads the config file and lets explicitly set flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(a.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("library") {
		cfg.Library = a.library
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism = a.parallelism
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	return nil
}

// files maps the seven positional arguments, plus the library directory, to
// loader input files.
func (a *app) files(args []string) (loader.Files, error) {
	f := loader.Files{
		IO:       args[0],
		Layer:    args[1],
		Wafer:    args[2],
		Assembly: args[3],
		Test:     args[4],
		Netlist:  args[5],
		Design:   args[6],
	}
	if a.cfg.Library != "" {
		lib, err := loader.LibraryFiles(a.cfg.Library)
		if err != nil {
			return loader.Files{}, err
		}
		f.Library = lib
	}
	return f, nil
}

// evaluate loads and builds the design.
func (a *app) evaluate(files loader.Files) (*die.Die, error) {
	in, err := loader.Load(files, loader.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	return in.Build(die.WithLogger(a.log), die.WithParallelism(a.cfg.Parallelism))
}
