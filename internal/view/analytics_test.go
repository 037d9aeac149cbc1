package view

import (
	"testing"
	"time"

	"relish/internal/customer"
)

func TestAggregate_VisitHistogram(t *testing.T) {
	records := []customer.Record{
		rec("a", 30, func(r *customer.Record) { r.VisitFrequency = customer.VisitFirst }),
		rec("b", 30, func(r *customer.Record) { r.VisitFrequency = customer.VisitWeekly }),
		rec("c", 30, func(r *customer.Record) { r.VisitFrequency = customer.VisitWeekly }),
	}

	a := Aggregate(records)
	want := map[string]int{"first": 1, "weekly": 2, "monthly": 0, "yearly": 0}
	for bucket, n := range want {
		if a.VisitHistogram[bucket] != n {
			t.Errorf("histogram[%s] = %d, want %d", bucket, a.VisitHistogram[bucket], n)
		}
	}
	if a.Regulars != 2 {
		t.Errorf("regulars = %d, want 2", a.Regulars)
	}
}

func TestAggregate_DietaryCountsEveryPreference(t *testing.T) {
	records := []customer.Record{
		rec("a", 30, func(r *customer.Record) {
			r.DietaryPreferences = []string{"Vegetarian", "Gluten-Free"}
		}),
		rec("b", 30, func(r *customer.Record) {
			r.DietaryPreferences = []string{"Vegetarian"}
		}),
		rec("c", 30), // none
	}

	a := Aggregate(records)
	if a.DietaryHistogram["Vegetarian"] != 2 {
		t.Errorf("Vegetarian = %d, want 2", a.DietaryHistogram["Vegetarian"])
	}
	if a.DietaryHistogram["Gluten-Free"] != 1 {
		t.Errorf("Gluten-Free = %d, want 1", a.DietaryHistogram["Gluten-Free"])
	}
	if a.DietaryHistogram["Vegan"] != 0 {
		t.Errorf("Vegan = %d, want 0 (zero-filled)", a.DietaryHistogram["Vegan"])
	}
}

func TestAggregate_TopDishes(t *testing.T) {
	dishes := []string{"dosa", "idli", "dosa", "vada", "idli", "pongal", "kesari", "halwa"}
	records := make([]customer.Record, 0, len(dishes))
	for _, d := range dishes {
		dish := d
		records = append(records, rec(dish, 30, func(r *customer.Record) { r.FavoriteDish = dish }))
	}

	a := Aggregate(records)
	if len(a.TopDishes) != 5 {
		t.Fatalf("top dishes length = %d, want 5", len(a.TopDishes))
	}
	if a.TopDishes[0].Label != "dosa" || a.TopDishes[0].Count != 2 {
		t.Errorf("top[0] = %+v, want dosa x2", a.TopDishes[0])
	}
	if a.TopDishes[1].Label != "idli" {
		t.Errorf("top[1] = %+v, want idli (tie broken by first appearance)", a.TopDishes[1])
	}
	// Singletons keep first-seen order after the tied pair.
	if a.TopDishes[2].Label != "vada" || a.TopDishes[3].Label != "pongal" {
		t.Errorf("top[2:4] = %+v,%+v, want vada,pongal", a.TopDishes[2], a.TopDishes[3])
	}
	if a.DistinctDishes != 6 {
		t.Errorf("distinct dishes = %d, want 6", a.DistinctDishes)
	}
}

func TestAggregate_Empty(t *testing.T) {
	a := Aggregate(nil)
	if a.Total != 0 || a.Regulars != 0 {
		t.Errorf("scalars = %d/%d, want zeros", a.Total, a.Regulars)
	}
	if len(a.VisitHistogram) != 4 {
		t.Errorf("visit histogram has %d buckets, want 4 zero-filled", len(a.VisitHistogram))
	}
	if len(a.TopDishes) != 0 {
		t.Errorf("top dishes = %v, want empty", a.TopDishes)
	}
}

func TestSummarize(t *testing.T) {
	records := []customer.Record{
		rec("a", 20, func(r *customer.Record) { r.Place = "Chennai" }),
		rec("b", 25, func(r *customer.Record) { r.Place = "Madurai" }),
		rec("c", 30, func(r *customer.Record) { r.Place = "Chennai" }),
	}

	stats := Summarize(records)
	if stats.Count != 3 {
		t.Errorf("count = %d, want 3", stats.Count)
	}
	if stats.MeanAge != 25 {
		t.Errorf("mean age = %d, want 25", stats.MeanAge)
	}
	if stats.TopPlace != "Chennai" {
		t.Errorf("top place = %q, want Chennai", stats.TopPlace)
	}
}

func TestSummarize_RoundsMeanAge(t *testing.T) {
	stats := Summarize([]customer.Record{rec("a", 20), rec("b", 25)})
	if stats.MeanAge != 23 {
		t.Errorf("mean age = %d, want 23 (22.5 rounds up)", stats.MeanAge)
	}
}

func TestSummarize_EmptySet(t *testing.T) {
	stats := Summarize(nil)
	if stats.Count != 0 || stats.MeanAge != 0 {
		t.Errorf("stats = %+v, want zero count and mean", stats)
	}
	if stats.TopPlace != "N/A" {
		t.Errorf("top place = %q, want N/A sentinel", stats.TopPlace)
	}
}

func TestCountToday(t *testing.T) {
	records := []customer.Record{
		rec("today-morning", 30, func(r *customer.Record) {
			r.SubmittedAt = time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)
		}),
		rec("today-evening", 30, func(r *customer.Record) {
			r.SubmittedAt = time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
		}),
		rec("yesterday", 30, func(r *customer.Record) {
			r.SubmittedAt = time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
		}),
	}

	if got := CountToday(records, now); got != 2 {
		t.Errorf("CountToday = %d, want 2", got)
	}
}
