package ops

import (
	"time"

	"relish/internal/customer"
)

// SubmitInput contains parameters for the Submit operation. Answers are
// keyed by field id, shaped per the field's kind.
type SubmitInput struct {
	Answers map[string]customer.Value `json:"answers"`
}

// SubmitOutput contains the result of the Submit operation.
type SubmitOutput struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submit normalizes a raw answer bag against the current schema and appends
// the resulting record. Malformed answers degrade to defaults rather than
// failing; the only error path is the store write itself.
func Submit(env *Env, input SubmitInput) (*SubmitOutput, error) {
	schema := env.Fields.Load()
	rec := customer.Normalize(schema, input.Answers, time.Now().UTC())
	if err := env.Records.Append(rec); err != nil {
		return nil, err
	}
	return &SubmitOutput{ID: rec.ID, SubmittedAt: rec.SubmittedAt}, nil
}
