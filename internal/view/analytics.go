package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"relish/internal/customer"
)

// DietaryCategories are the canonical preference buckets charted on the
// analytics page, in display order.
var DietaryCategories = []string{"Vegetarian", "Non-Vegetarian", "Vegan", "Gluten-Free"}

// CountedLabel is one bar of a frequency chart.
type CountedLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Analytics aggregates the full, unfiltered record set.
type Analytics struct {
	Total          int `json:"total"`
	Regulars       int `json:"regulars"` // weekly or monthly visitors
	DistinctPlaces int `json:"distinct_places"`
	DistinctDishes int `json:"distinct_dishes"`

	// VisitHistogram always carries all four buckets, zero-filled, so
	// charts render a stable axis.
	VisitHistogram map[string]int `json:"visit_histogram"`
	// DietaryHistogram carries the four canonical categories; a record
	// with several preferences increments several buckets.
	DietaryHistogram map[string]int `json:"dietary_histogram"`

	TopDishes []CountedLabel `json:"top_dishes"`
	TopPlaces []CountedLabel `json:"top_places"`
}

const topLimit = 5

// Aggregate computes the analytics projection over all records.
func Aggregate(records []customer.Record) Analytics {
	a := Analytics{
		Total: len(records),
		VisitHistogram: map[string]int{
			customer.VisitFirst:   0,
			customer.VisitWeekly:  0,
			customer.VisitMonthly: 0,
			customer.VisitYearly:  0,
		},
		DietaryHistogram: make(map[string]int, len(DietaryCategories)),
	}
	for _, cat := range DietaryCategories {
		a.DietaryHistogram[cat] = 0
	}

	dishes := make([]string, 0, len(records))
	places := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := a.VisitHistogram[rec.VisitFrequency]; ok {
			a.VisitHistogram[rec.VisitFrequency]++
		} else {
			a.VisitHistogram[customer.VisitYearly]++
		}
		if rec.VisitFrequency == customer.VisitWeekly || rec.VisitFrequency == customer.VisitMonthly {
			a.Regulars++
		}
		for _, pref := range rec.DietaryPreferences {
			if _, ok := a.DietaryHistogram[pref]; ok {
				a.DietaryHistogram[pref]++
			}
		}
		dishes = append(dishes, rec.FavoriteDish)
		places = append(places, rec.Place)
	}

	a.TopDishes = topCounts(dishes, topLimit)
	a.TopPlaces = topCounts(places, topLimit)
	a.DistinctDishes = distinct(dishes)
	a.DistinctPlaces = distinct(places)
	return a
}

// TableStats summarizes the filtered table set.
type TableStats struct {
	Count    int    `json:"count"`
	MeanAge  int    `json:"mean_age"`  // rounded to nearest integer, 0 when empty
	TopPlace string `json:"top_place"` // "N/A" when no place is known
}

// Summarize computes the table-view scalars over an already-filtered set.
func Summarize(filtered []customer.Record) TableStats {
	stats := TableStats{Count: len(filtered), TopPlace: "N/A"}
	if len(filtered) == 0 {
		return stats
	}

	sum := 0
	places := make([]string, 0, len(filtered))
	for _, rec := range filtered {
		sum += rec.Age
		places = append(places, rec.Place)
	}
	stats.MeanAge = int(math.Round(float64(sum) / float64(len(filtered))))
	if top := topCounts(places, 1); len(top) > 0 {
		stats.TopPlace = top[0].Label
	}
	return stats
}

// CountToday counts records submitted on the same calendar day as now, in
// now's location.
func CountToday(records []customer.Record, now time.Time) int {
	y, m, d := now.Date()
	n := 0
	for _, rec := range records {
		ry, rm, rd := rec.SubmittedAt.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			n++
		}
	}
	return n
}

// topCounts groups values by exact string, orders counts descending with
// ties broken by first appearance, and keeps the first limit groups. Blank
// values are ignored.
func topCounts(values []string, limit int) []CountedLabel {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]CountedLabel, 0, len(order))
	for _, label := range order {
		out = append(out, CountedLabel{Label: label, Count: counts[label]})
	}
	// Stable sort keeps equal counts in first-seen order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distinct(values []string) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}
