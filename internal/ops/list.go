package ops

import (
	"time"

	"relish/internal/customer"
	"relish/internal/view"
)

// ListInput contains filter and sort parameters for the List operation.
// Zero values pass everything through.
type ListInput struct {
	Search  string `json:"search,omitempty"`
	AgeBand string `json:"age_band,omitempty"` // "18-25" style, or "46+"
	Gender  string `json:"gender,omitempty"`
	Days    int    `json:"days,omitempty"` // recency window, 0 = all time
	SortKey string `json:"sort_key,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Records []customer.Record `json:"records"`
	Stats   view.TableStats   `json:"stats"`
	Total   int               `json:"total"` // unfiltered record count
}

// List returns the filtered, sorted table projection plus its summary
// scalars.
func List(env *Env, input ListInput) (*ListOutput, error) {
	records, err := env.Records.LoadAll()
	if err != nil {
		return nil, err
	}

	filtered := view.Apply(records, view.Params{
		Search:  input.Search,
		AgeBand: input.AgeBand,
		Gender:  input.Gender,
		Days:    input.Days,
		SortKey: view.SortKey(input.SortKey),
		SortDir: view.SortDir(input.SortDir),
		Now:     time.Now().UTC(),
	})

	return &ListOutput{
		Records: filtered,
		Stats:   view.Summarize(filtered),
		Total:   len(records),
	}, nil
}
