// Package view computes read-side projections of the record list: the
// filtered/sorted table, the analytics aggregates, and the dashboard
// scalars. Everything here is a pure function over an explicit record slice
// and parameter struct; nothing caches and nothing mutates its input.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"relish/internal/customer"
)

// SortKey names a sortable record attribute.
type SortKey string

const (
	SortName        SortKey = "name"
	SortAge         SortKey = "age"
	SortGender      SortKey = "gender"
	SortPlace       SortKey = "place"
	SortSubmittedAt SortKey = "submittedAt"
)

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Params selects and orders records for the table view. Zero values mean
// pass-through: empty Search/AgeBand/Gender and Days == 0 filter nothing,
// and an empty SortKey leaves insertion order. Now anchors the recency
// window so callers control the clock.
type Params struct {
	Search  string
	AgeBand string
	Gender  string
	Days    int
	SortKey SortKey
	SortDir SortDir
	Now     time.Time
}

// Apply filters and sorts records per the parameters, returning a new slice.
// Sorting is stable: records with equal keys keep their insertion order.
func Apply(records []customer.Record, p Params) []customer.Record {
	out := make([]customer.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, p) {
			out = append(out, rec)
		}
	}

	if p.SortKey == "" {
		return out
	}
	desc := p.SortDir == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return lessByKey(out[j], out[i], p.SortKey)
		}
		return lessByKey(out[i], out[j], p.SortKey)
	})
	return out
}

// NextSort returns the sort state after clicking a column header: clicking
// the key already sorted ascending flips to descending, anything else
// resets to ascending on the clicked key.
func NextSort(current Params, key SortKey) (SortKey, SortDir) {
	if current.SortKey == key && current.SortDir == SortAsc {
		return key, SortDesc
	}
	return key, SortAsc
}

func matches(rec customer.Record, p Params) bool {
	if s := strings.TrimSpace(p.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(rec.Name), needle) &&
			!strings.Contains(strings.ToLower(rec.Email), needle) {
			return false
		}
	}
	if lo, hi, ok := parseAgeBand(p.AgeBand); ok {
		if rec.Age < lo || (hi > 0 && rec.Age > hi) {
			return false
		}
	}
	if p.Gender != "" && p.Gender != "all" && rec.Gender != p.Gender {
		return false
	}
	if p.Days > 0 {
		cutoff := p.Now.AddDate(0, 0, -p.Days)
		if rec.SubmittedAt.Before(cutoff) || rec.SubmittedAt.After(p.Now) {
			return false
		}
	}
	return true
}

// parseAgeBand reads "18-25" style bands: inclusive lower bound, inclusive
// upper bound when present ("46" or "46+" means unbounded above, hi == 0).
func parseAgeBand(band string) (lo, hi int, ok bool) {
	band = strings.TrimSpace(band)
	if band == "" || band == "all" {
		return 0, 0, false
	}
	band = strings.TrimSuffix(band, "+")
	loPart, hiPart, split := strings.Cut(band, "-")
	lo, err := strconv.Atoi(loPart)
	if err != nil {
		return 0, 0, false
	}
	if !split {
		return lo, 0, true
	}
	hi, err = strconv.Atoi(hiPart)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

func lessByKey(a, b customer.Record, key SortKey) bool {
	switch key {
	case SortAge:
		return a.Age < b.Age
	case SortGender:
		return strings.ToLower(a.Gender) < strings.ToLower(b.Gender)
	case SortPlace:
		return strings.ToLower(a.Place) < strings.ToLower(b.Place)
	case SortSubmittedAt:
		return a.SubmittedAt.Before(b.SubmittedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
