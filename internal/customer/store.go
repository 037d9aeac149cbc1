package customer

import (
	"encoding/json"
	"fmt"

	"relish/internal/errors"
)

// documentKey is the persisted-document name for the record list.
const documentKey = "customerData"

// Documents is the persistence backend the store needs: whole-document
// reads and writes keyed by name.
type Documents interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
	Delete(key string) error
}

// Store owns the persisted record list. Records are logically append-only:
// the only mutations are append, bulk replace, and full clear, all following
// the read-full/modify/write-full discipline (safe under the single-writer
// assumption the tool runs with).
type Store struct {
	docs Documents
}

// NewStore creates a record store over the given backend.
func NewStore(docs Documents) *Store {
	return &Store{docs: docs}
}

// Append adds one record to the end of the persisted list.
func (s *Store) Append(rec Record) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}
	return s.persist(append(records, rec))
}

// LoadAll returns all records in insertion order, or an empty slice if none
// are persisted.
func (s *Store) LoadAll() ([]Record, error) {
	body, ok, err := s.docs.Get(documentKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("decode customer data: %w", err))
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// ReplaceAll overwrites the persisted list wholesale.
func (s *Store) ReplaceAll(records []Record) error {
	return s.persist(records)
}

// Clear wipes every record. Irreversible.
func (s *Store) Clear() error {
	return s.docs.Delete(documentKey)
}

func (s *Store) persist(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("encode customer data: %w", err))
	}
	return s.docs.Put(documentKey, body)
}
