package form

import (
	"encoding/json"
	"strconv"
	"strings"
)

// documentKey is the persisted-document name for the form schema.
const documentKey = "formFields"

// Direction selects a neighbor when reordering fields.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Documents is the persistence backend the store needs: whole-document
// reads and writes keyed by name.
type Documents interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
	Delete(key string) error
}

// Store owns the persisted form schema. It is constructed once at startup
// with an explicit backend and passed by handle to every consumer; mutating
// operations persist the full updated schema synchronously before returning.
type Store struct {
	docs Documents
}

// NewStore creates a schema store over the given backend.
func NewStore(docs Documents) *Store {
	return &Store{docs: docs}
}

// Load returns the persisted schema, or the built-in default if none exists.
// It never fails: an unreadable or corrupt document degrades to the default
// rather than blocking the form.
func (s *Store) Load() Schema {
	body, ok, err := s.docs.Get(documentKey)
	if err != nil || !ok {
		return Default()
	}

	var schema Schema
	if err := json.Unmarshal(body, &schema); err != nil {
		return Default()
	}

	// Schemas persisted before roles existed carry none; recover them from
	// the literal well-known labels so old configurations keep feeding the
	// canonical record attributes.
	for i, f := range schema {
		if f.Role == RoleNone {
			schema[i].Role = RoleForName(f.Name)
		}
	}
	return schema
}

// Replace overwrites the persisted schema wholesale. Only structural
// well-formedness is checked; the caller is responsible for not orphaning
// stored data semantically.
func (s *Store) Replace(schema Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	return s.persist(schema)
}

// AppendField assigns a new id (one greater than the current field count)
// and appends the field to the end of the schema. A field with an empty name
// is a no-op returning the unchanged schema. Choices are kept only when the
// kind carries them.
func (s *Store) AppendField(f Field) (Schema, error) {
	schema := s.Load()
	if strings.TrimSpace(f.Name) == "" {
		return schema, nil
	}

	f.ID = strconv.Itoa(len(schema) + 1)
	if !f.Kind.Valid() {
		f.Kind = KindText
	}
	if !f.Kind.NeedsChoices() {
		f.Choices = nil
	}

	schema = append(schema, f)
	if err := s.persist(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// RemoveField removes the field with the given id, preserving the order of
// the remaining fields. Removing an unknown id is a no-op.
func (s *Store) RemoveField(id string) (Schema, error) {
	schema := s.Load()

	kept := make(Schema, 0, len(schema))
	removed := false
	for _, f := range schema {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return schema, nil
	}

	if err := s.persist(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// MoveField swaps the field at index with its neighbor in the given
// direction. A move whose neighbor falls outside the schema is a no-op
// returning the unchanged schema.
func (s *Store) MoveField(index int, dir Direction) (Schema, error) {
	schema := s.Load()

	neighbor := index + 1
	if dir == DirectionUp {
		neighbor = index - 1
	}
	if index < 0 || index >= len(schema) || neighbor < 0 || neighbor >= len(schema) {
		return schema, nil
	}

	schema[index], schema[neighbor] = schema[neighbor], schema[index]
	if err := s.persist(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// Reset restores the built-in default schema.
func (s *Store) Reset() (Schema, error) {
	schema := Default()
	if err := s.persist(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// persist writes the full schema document.
func (s *Store) persist(schema Schema) error {
	body, err := json.Marshal(schema)
	if err != nil {
		return err
	}
	return s.docs.Put(documentKey, body)
}
