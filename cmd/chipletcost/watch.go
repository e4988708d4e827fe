package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/chiplet/loader"
)

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch " + inputArgs,
		Short: "Re-evaluate the design whenever an input file changes",
		Long: `Print the total cost, then print it again after every change to any
input file until interrupted. Evaluation errors are printed and watching
continues.`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.files(args)
			if err != nil {
				return err
			}
			return a.watch(cmd.Context(), files, cmd.OutOrStdout(), nil)
		},
	}
}

// watch evaluates files, then again after each debounced burst of changes.
// Directories are watched rather than files so that editors that replace a
// file by rename are still seen. ready, if non-nil, is closed once the
// watches are in place and the first result is printed.
func (a *app) watch(ctx context.Context, files loader.Files, out io.Writer, ready chan<- struct{}) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range files.All() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	a.log.Info("watching inputs", "files", len(watched), "debounce", a.cfg.Watch.Debounce)

	a.report(files, out)
	if ready != nil {
		close(ready)
	}

	timer := time.NewTimer(a.cfg.Watch.Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			a.log.Debug("input changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(a.cfg.Watch.Debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "error", err)
		case <-timer.C:
			a.report(files, out)
		}
	}
}

// report prints one evaluation; failures are printed instead of returned.
func (a *app) report(files loader.Files, out io.Writer) {
	d, err := a.evaluate(files)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(out, formatCost(d.TotalCost()))
}
