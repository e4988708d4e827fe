package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/chiplet"
	"github.com/katalvlaran/chiplet/die"
	"github.com/katalvlaran/chiplet/loader"
)

// Direction is the sign of an applied perturbation.
type Direction int

const (
	Increase Direction = iota
	Decrease
)

func (d Direction) String() string {
	if d == Decrease {
		return outcomeDecrease
	}
	return outcomeIncrease
}

// MarshalText renders the direction as "increase" or "decrease".
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Result is one successful trial.
type Result struct {
	Parameter   string    `yaml:"parameter"`
	Direction   Direction `yaml:"direction"`
	Base        float64   `yaml:"base"`
	Perturbed   float64   `yaml:"perturbed"`
	Cost        float64   `yaml:"cost"`
	Sensitivity float64   `yaml:"sensitivity"`
}

// TrialError is a trial that produced no cost in either direction.
type TrialError struct {
	Parameter string  `yaml:"parameter"`
	Base      float64 `yaml:"base"`
	Message   string  `yaml:"message"`
}

// Report is the outcome of one Run. Results are sorted by descending
// |Sensitivity| then Parameter; Errors by Parameter.
type Report struct {
	RunID    string       `yaml:"run_id"`
	Percent  float64      `yaml:"percent"`
	BaseCost float64      `yaml:"base_cost"`
	Results  []Result     `yaml:"results"`
	Errors   []TrialError `yaml:"errors,omitempty"`
}

var errUnchanged = errors.New("truncated value does not change")

type runner struct {
	docs    *loader.Documents
	refs    references
	percent float64
	base    float64
}

// outcome holds exactly one of result and err.
type outcome struct {
	result *Result
	err    *TrialError
}

func (o outcome) label() string {
	if o.err != nil {
		return outcomeError
	}
	return o.result.Direction.String()
}

// Run performs the sweep over docs, which it does not modify. It fails if
// the unperturbed design does not evaluate or ctx is cancelled; individual
// trial failures are reported in Report.Errors.
func Run(ctx context.Context, docs *loader.Documents, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	runID := uuid.NewString()
	log := o.logger.With("run_id", runID)

	m, err := newMetrics(o.registerer, runID)
	if err != nil {
		return nil, err
	}

	in, err := docs.Decode(loader.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("sweep: base design: %w", err)
	}
	root, err := in.Build(die.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("sweep: base design: %w", err)
	}
	base := root.TotalCost()
	if math.IsInf(base, 0) || math.IsNaN(base) || base <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrBaseCost, base)
	}

	r := &runner{docs: docs, refs: referencesOf(in), percent: o.percent, base: base}
	targets := collectTargets(docs, r.refs)
	log.Info("sweep started", "targets", len(targets), "percent", o.percent, "workers", o.workers, "base_cost", base)

	outcomes := make([]outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			outcomes[i] = r.trial(t)
			m.duration.Observe(time.Since(start).Seconds())
			m.trials.WithLabelValues(outcomes[i].label()).Inc()
			if e := outcomes[i].err; e != nil {
				log.Warn("trial failed", "parameter", e.Parameter, "error", e.Message)
			} else {
				log.Debug("trial done", "parameter", t.path, "sensitivity", outcomes[i].result.Sensitivity)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{RunID: runID, Percent: o.percent, BaseCost: base, Results: []Result{}}
	for _, oc := range outcomes {
		if oc.err != nil {
			rep.Errors = append(rep.Errors, *oc.err)
		} else {
			rep.Results = append(rep.Results, *oc.result)
		}
	}
	rep.order()
	log.Info("sweep finished", "results", len(rep.Results), "errors", len(rep.Errors))
	return rep, nil
}

func (t target) perturb(d Direction, percent float64) float64 {
	f := 1 + percent/100
	if d == Decrease {
		f = 1 - percent/100
	}
	v := t.base * f
	if t.integer {
		v = math.Trunc(v)
	}
	return v
}

// trial tries an increase, then a decrease when the increase is rejected by
// validation or leaves an integer unchanged.
func (r *runner) trial(t target) outcome {
	var last error
	for _, dir := range []Direction{Increase, Decrease} {
		v := t.perturb(dir, r.percent)
		if t.integer && v == t.base {
			last = errUnchanged
			continue
		}
		cost, err := r.evaluate(t, v)
		if err != nil {
			last = err
			if errors.Is(err, chiplet.ErrConfiguration) {
				continue
			}
			break
		}
		if math.IsInf(cost, 0) || math.IsNaN(cost) {
			last = fmt.Errorf("%s to %g gives a cost of %g", dir, v, cost)
			break
		}
		s := (cost - r.base) / (r.base * r.percent / 100)
		if dir == Decrease {
			s = -s
		}
		return outcome{result: &Result{
			Parameter:   t.path,
			Direction:   dir,
			Base:        t.base,
			Perturbed:   v,
			Cost:        cost,
			Sensitivity: s,
		}}
	}
	return outcome{err: &TrialError{Parameter: t.path, Base: t.base, Message: last.Error()}}
}

// evaluate rebuilds the design on a private copy with the target set to v.
func (r *runner) evaluate(t target, v float64) (float64, error) {
	docs := r.docs.Clone()
	leaves := scalars(docs.All()[t.doc], t.doc < len(docs.Catalogs), r.refs)
	set(leaves[t.ordinal].node, v, t.integer)

	in, err := docs.Decode()
	if err != nil {
		return 0, err
	}
	d, err := in.Build()
	if err != nil {
		return 0, err
	}
	return d.TotalCost(), nil
}
