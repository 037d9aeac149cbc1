package ops

import (
	"time"

	"relish/internal/view"
)

// AnalyticsOutput contains the aggregate projection over all records.
type AnalyticsOutput struct {
	view.Analytics
	Today int `json:"today"` // submissions on the current calendar day
}

// Analytics aggregates the full record set for the dashboard and charts.
func Analytics(env *Env) (*AnalyticsOutput, error) {
	records, err := env.Records.LoadAll()
	if err != nil {
		return nil, err
	}
	return &AnalyticsOutput{
		Analytics: view.Aggregate(records),
		Today:     view.CountToday(records, time.Now()),
	}, nil
}
