package process

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// record tracks which fields of one catalog entry were assigned and whether
// the entry is finalized. Every concrete record embeds one.
type record struct {
	kind      string
	name      string
	assigned  map[string]bool
	finalized bool
}

func newRecord(kind, name string) record {
	return record{kind: kind, name: name, assigned: make(map[string]bool)}
}

// Name returns the record name (the IO type for IO records).
func (r *record) Name() string { return r.name }

// Finalized reports whether the record rejects further mutation.
func (r *record) Finalized() bool { return r.finalized }

// IsSet reports whether field was assigned.
func (r *record) IsSet(field string) bool { return r.assigned[field] }

// assign runs the shared guard for a setter: finalized records and failed
// checks are rejected, otherwise apply stores the value.
func (r *record) assign(field string, check error, apply func()) error {
	if r.finalized {
		return r.fieldErr(field, ErrFinalized)
	}
	if check != nil {
		return r.fieldErr(field, check)
	}
	apply()
	r.assigned[field] = true

	return nil
}

func (r *record) fieldErr(field string, err error) error {
	return fmt.Errorf("%s %q.%s: %w", r.kind, r.name, field, err)
}

// missing lists required fields that were never assigned.
func (r *record) missing(required []string) []string {
	var out []string
	if r.name == "" {
		out = append(out, "name")
	}
	for _, f := range required {
		if !r.assigned[f] {
			out = append(out, f)
		}
	}

	return out
}

// finalize seals the record when nothing in required is missing.
func (r *record) finalize(required []string) error {
	if r.finalized {
		return nil
	}
	if miss := r.missing(required); len(miss) > 0 {
		return fmt.Errorf("%s %q: %w: %s", r.kind, r.name, ErrMissingField, strings.Join(miss, ", "))
	}
	r.finalized = true

	return nil
}

func finite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNotFinite
	}
	return nil
}

func nonNegative(v float64) error {
	if err := finite(v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%w: %g < 0", ErrOutOfRange, v)
	}
	return nil
}

func unitInterval(v float64) error {
	if err := finite(v); err != nil {
		return err
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %g not in [0,1]", ErrOutOfRange, v)
	}
	return nil
}

func atLeast(v, lo int) error {
	if v < lo {
		return fmt.Errorf("%w: %d < %d", ErrOutOfRange, v, lo)
	}
	return nil
}

// atMost combines a nonnegative check with an upper bound known only once
// another field is set.
func atMost(v, hi float64, bounded bool) error {
	if err := nonNegative(v); err != nil {
		return err
	}
	if bounded && v > hi {
		return fmt.Errorf("%w: %g > %g", ErrOutOfRange, v, hi)
	}
	return nil
}

// optional is a value that may be absent.
type optional struct {
	v  float64
	ok bool
}

// IsIncomplete reports whether err is a missing-field failure from Finalize.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrMissingField)
}
