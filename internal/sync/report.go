package sync

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coldrink/pwhl-data/internal/model"
)

// Tally counts records of one entity kind over a run.
type Tally struct {
	Attempted int
	Succeeded int
	Failed    int
}

// Report accumulates the outcome of one sync run. Every run produces a
// Report, including runs that hit unit failures along the way.
type Report struct {
	Started  time.Time
	Finished time.Time
	Kinds    map[model.Kind]*Tally
	Warnings int
	Errors   []string
}

// NewReport creates an empty report with the start time set.
func NewReport() *Report {
	return &Report{
		Started: time.Now(),
		Kinds:   make(map[model.Kind]*Tally),
	}
}

func (r *Report) tally(kind model.Kind) *Tally {
	t, ok := r.Kinds[kind]
	if !ok {
		t = &Tally{}
		r.Kinds[kind] = t
	}
	return t
}

// AddSucceeded records n records of kind committed.
func (r *Report) AddSucceeded(kind model.Kind, n int) {
	t := r.tally(kind)
	t.Attempted += n
	t.Succeeded += n
}

// AddFailed records n records of kind that were attempted but not
// committed, with the unit error.
func (r *Report) AddFailed(kind model.Kind, n int, err error) {
	t := r.tally(kind)
	t.Attempted += n
	t.Failed += n
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", kind, err))
}

// AddWarnings records n records dropped during normalization.
func (r *Report) AddWarnings(n int) {
	r.Warnings += n
}

// AddErrorf records a unit failure that produced no records, such as a
// failed fetch.
func (r *Report) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// HasFailures reports whether any unit failed.
func (r *Report) HasFailures() bool {
	if len(r.Errors) > 0 {
		return true
	}
	for _, t := range r.Kinds {
		if t.Failed > 0 {
			return true
		}
	}
	return false
}

// Summary renders a one-line-per-kind digest for the log.
func (r *Report) Summary() string {
	kinds := make([]string, 0, len(r.Kinds))
	for kind := range r.Kinds {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	var b strings.Builder
	fmt.Fprintf(&b, "sync finished in %s", r.Finished.Sub(r.Started).Round(time.Millisecond))
	for _, kind := range kinds {
		t := r.Kinds[model.Kind(kind)]
		fmt.Fprintf(&b, "\n  %-20s attempted=%d succeeded=%d failed=%d", kind, t.Attempted, t.Succeeded, t.Failed)
	}
	if r.Warnings > 0 {
		fmt.Fprintf(&b, "\n  records skipped during normalization: %d", r.Warnings)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\n  errors: %d", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "\n    - %s", e)
		}
	}
	return b.String()
}
