package ops

import (
	"relish/internal/form"
)

// FieldAddInput contains parameters for the FieldAdd operation.
type FieldAddInput struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required,omitempty"`
	Choices  []string `json:"choices,omitempty"`
}

// FieldMoveInput contains parameters for the FieldMove operation.
type FieldMoveInput struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"` // "up" or "down"
}

// FieldsList returns the current form schema.
func FieldsList(env *Env) form.Schema {
	return env.Fields.Load()
}

// FieldAdd appends a new field to the schema. An empty name leaves the
// schema unchanged.
func FieldAdd(env *Env, input FieldAddInput) (form.Schema, error) {
	return env.Fields.AppendField(form.Field{
		Name:     input.Name,
		Kind:     form.Kind(input.Kind),
		Required: input.Required,
		Choices:  input.Choices,
	})
}

// FieldRemove removes the field with the given id, if present.
func FieldRemove(env *Env, id string) (form.Schema, error) {
	return env.Fields.RemoveField(id)
}

// FieldMove swaps a field with its neighbor. Out-of-bounds moves leave the
// schema unchanged.
func FieldMove(env *Env, input FieldMoveInput) (form.Schema, error) {
	dir := form.DirectionDown
	if input.Direction == string(form.DirectionUp) {
		dir = form.DirectionUp
	}
	return env.Fields.MoveField(input.Index, dir)
}

// FieldsReset restores the built-in default schema.
func FieldsReset(env *Env) (form.Schema, error) {
	return env.Fields.Reset()
}
