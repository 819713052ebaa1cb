package capture

import (
	"github.com/roadrunner-server/errors"
)

// View is a read-only, level-filtered projection over a Capture's buffer.
// It is a cheap descriptor: nothing is copied until a query runs, and
// every query resolves against the buffer as it is at that moment.
type View struct {
	c     *Capture
	level Level
}

// Records returns the filtered records, in emission order.
func (v View) Records() []Record {
	all := v.c.snapshot()
	if v.level == anyLevel {
		return all
	}

	out := make([]Record, 0, len(all))
	for i := range all {
		if all[i].Level == v.level {
			out = append(out, all[i])
		}
	}
	return out
}

// Contains is the containment query: it reports whether the pattern
// matches the view's records. Nothing matches exactly when the view is
// empty. A false result is not an error, the assertion layer decides what
// to do with it.
func (v View) Contains(p Pattern) bool {
	recs := v.Records()
	if IsNothing(p) {
		return len(recs) == 0
	}

	for i := range recs {
		if p.match(recs[i]) {
			return true
		}
	}
	return false
}

// NotContains is the negated containment query. Nothing cannot be
// negated: asserting that just anything was logged is a usage error,
// reported here instead of being silently reinterpreted.
func (v View) NotContains(p Pattern) (bool, error) {
	const op = errors.Op("view_not_contains")

	if IsNothing(p) {
		return false, errors.E(op, errors.Str("the nothing pattern cannot be negated, name what you expect to be logged"))
	}
	return !v.Contains(p), nil
}

// Find returns the first filtered record satisfying the pattern, for
// diagnostics on unexpected matches.
func (v View) Find(p Pattern) (Record, bool) {
	recs := v.Records()
	for i := range recs {
		if p.match(recs[i]) {
			return recs[i], true
		}
	}
	return Record{}, false
}

func (v View) levelName() string {
	if v.level == anyLevel {
		return anyLevelName
	}
	return v.level.String()
}
