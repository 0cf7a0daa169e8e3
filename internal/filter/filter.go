// Package filter narrows a reading collection by a conjunction of
// predicates: exact date, location substring, and free-text search.
package filter

import (
	"strconv"
	"strings"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// Spec describes the active filters. Empty fields impose no constraint, so
// the zero Spec matches everything.
type Spec struct {
	Date       string // exact match against Reading.Date
	Location   string // case-insensitive substring of Reading.Location
	SearchTerm string // case-insensitive substring of any searchable field
}

// IsZero reports whether no predicate is set.
func (s Spec) IsZero() bool {
	return s.Date == "" && s.Location == "" && s.SearchTerm == ""
}

// Apply returns the subsequence of rs matching every predicate in spec,
// preserving input order. The input slice is not modified.
func Apply(rs []reading.Reading, spec Spec) []reading.Reading {
	if spec.IsZero() {
		out := make([]reading.Reading, len(rs))
		copy(out, rs)
		return out
	}

	location := strings.ToLower(spec.Location)
	term := strings.ToLower(spec.SearchTerm)

	out := make([]reading.Reading, 0, len(rs))
	for _, r := range rs {
		if spec.Date != "" && r.Date != spec.Date {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(r.Location), location) {
			continue
		}
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesSearch tests the term against the string form of every visible
// field; a reading matches if any field matches.
func matchesSearch(r reading.Reading, term string) bool {
	fields := []string{
		strconv.Itoa(r.ID),
		strings.ToLower(r.Location),
		strings.ToLower(r.RawPHValue),
		strings.ToLower(r.RawTemperature),
		strings.ToLower(r.RawTurbidity),
		r.Date,
		r.Time,
	}
	for _, f := range fields {
		if strings.Contains(f, term) {
			return true
		}
	}
	return false
}
