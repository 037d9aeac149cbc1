package ops

import (
	"relish/internal/errors"
)

// ClearInput contains parameters for the Clear operation.
type ClearInput struct {
	Confirm bool `json:"confirm"`
}

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	RecordsDeleted int `json:"records_deleted"`
}

// Clear irreversibly wipes every record and restores the default schema.
// It refuses to run without explicit confirmation.
func Clear(env *Env, input ClearInput) (*ClearOutput, error) {
	if !input.Confirm {
		return nil, errors.NewInvalidRequest("clear requires confirmation; pass confirm=true to delete all data")
	}

	records, err := env.Records.LoadAll()
	if err != nil {
		return nil, err
	}
	if err := env.Records.Clear(); err != nil {
		return nil, err
	}
	if _, err := env.Fields.Reset(); err != nil {
		return nil, err
	}
	return &ClearOutput{RecordsDeleted: len(records)}, nil
}
