package form

import (
	"testing"

	"relish/internal/db"
	"relish/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(db.NewMemory())
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	store := newTestStore(t)

	schema := store.Load()
	if len(schema) != 9 {
		t.Fatalf("default schema length = %d, want 9", len(schema))
	}
	if schema[0].Name != "Name" || schema[0].Role != RoleName {
		t.Errorf("first field = %+v, want Name field with name role", schema[0])
	}
	if schema[8].Kind != KindMultiChoice {
		t.Errorf("last field kind = %q, want %q", schema[8].Kind, KindMultiChoice)
	}
}

func TestLoad_DefaultWhenCorrupt(t *testing.T) {
	docs := db.NewMemory()
	if err := docs.Put("formFields", []byte(`{not json`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	schema := NewStore(docs).Load()
	if len(schema) != 9 {
		t.Errorf("schema length = %d, want default 9 on corrupt document", len(schema))
	}
}

func TestLoad_BackfillsRolesFromWellKnownNames(t *testing.T) {
	docs := db.NewMemory()
	// A schema persisted before roles existed: names only.
	legacy := `[
		{"id":"1","name":"Age","kind":"number","required":true},
		{"id":"2","name":"Table Number","kind":"text","required":false}
	]`
	if err := docs.Put("formFields", []byte(legacy)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	schema := NewStore(docs).Load()
	if schema[0].Role != RoleAge {
		t.Errorf("Age role = %q, want %q", schema[0].Role, RoleAge)
	}
	if schema[1].Role != RoleNone {
		t.Errorf("Table Number role = %q, want none", schema[1].Role)
	}
}

func TestReplace_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	schema := Schema{
		{ID: "1", Name: "Nickname", Kind: KindText, Required: true},
		{ID: "2", Name: "Spice Level", Kind: KindSingleChoice, Required: false,
			Choices: []string{"Mild", "Medium", "Hot"}},
	}
	if err := store.Replace(schema); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	loaded := store.Load()
	if len(loaded) != 2 {
		t.Fatalf("loaded length = %d, want 2", len(loaded))
	}
	if loaded[1].Name != "Spice Level" || len(loaded[1].Choices) != 3 {
		t.Errorf("loaded[1] = %+v, want Spice Level with 3 choices", loaded[1])
	}
}

func TestReplace_RejectsStructurallyInvalid(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name   string
		schema Schema
	}{
		{"duplicate ids", Schema{
			{ID: "1", Name: "A", Kind: KindText},
			{ID: "1", Name: "B", Kind: KindText},
		}},
		{"missing choices", Schema{
			{ID: "1", Name: "Pick", Kind: KindSingleChoice},
		}},
		{"choices on plain field", Schema{
			{ID: "1", Name: "A", Kind: KindText, Choices: []string{"x"}},
		}},
		{"unknown kind", Schema{
			{ID: "1", Name: "A", Kind: "dropdown"},
		}},
		{"empty id", Schema{
			{ID: "", Name: "A", Kind: KindText},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Replace(tt.schema)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("Replace() error = %v, want INVALID_REQUEST", err)
			}
		})
	}
}

func TestAppendField(t *testing.T) {
	store := newTestStore(t)

	schema, err := store.AppendField(Field{Name: "Notes", Kind: KindMultiline})
	if err != nil {
		t.Fatalf("AppendField() error = %v", err)
	}
	if len(schema) != 10 {
		t.Fatalf("schema length = %d, want 10", len(schema))
	}
	last := schema[len(schema)-1]
	if last.ID != "10" {
		t.Errorf("new field id = %q, want %q", last.ID, "10")
	}
	if last.Name != "Notes" || last.Kind != KindMultiline {
		t.Errorf("new field = %+v, want Notes multiline", last)
	}
	if last.Role != RoleNone {
		t.Errorf("new field role = %q, want none", last.Role)
	}

	// Persisted, not just returned
	if got := store.Load(); len(got) != 10 {
		t.Errorf("Load() length = %d, want 10 after append", len(got))
	}
}

func TestAppendField_EmptyNameIsNoOp(t *testing.T) {
	store := newTestStore(t)

	schema, err := store.AppendField(Field{Name: "   ", Kind: KindText})
	if err != nil {
		t.Fatalf("AppendField() error = %v", err)
	}
	if len(schema) != 9 {
		t.Errorf("schema length = %d, want unchanged 9", len(schema))
	}
}

func TestAppendField_DropsChoicesForPlainKinds(t *testing.T) {
	store := newTestStore(t)

	schema, err := store.AppendField(Field{Name: "Notes", Kind: KindText, Choices: []string{"a"}})
	if err != nil {
		t.Fatalf("AppendField() error = %v", err)
	}
	if got := schema[len(schema)-1].Choices; got != nil {
		t.Errorf("choices = %v, want nil for text kind", got)
	}
}

func TestRemoveField(t *testing.T) {
	store := newTestStore(t)

	schema, err := store.RemoveField("5") // Email
	if err != nil {
		t.Fatalf("RemoveField() error = %v", err)
	}
	if len(schema) != 8 {
		t.Fatalf("schema length = %d, want 8", len(schema))
	}
	if _, ok := schema.FieldByID("5"); ok {
		t.Error("field 5 still present after removal")
	}
	// Order of the survivors is preserved
	if schema[3].ID != "4" || schema[4].ID != "6" {
		t.Errorf("order around removal = %q,%q, want 4,6", schema[3].ID, schema[4].ID)
	}
}

func TestRemoveField_UnknownIDIsNoOp(t *testing.T) {
	store := newTestStore(t)

	schema, err := store.RemoveField("99")
	if err != nil {
		t.Fatalf("RemoveField() error = %v", err)
	}
	if len(schema) != 9 {
		t.Errorf("schema length = %d, want unchanged 9", len(schema))
	}
}

func TestMoveField(t *testing.T) {
	store := newTestStore(t)

	schema, err := store.MoveField(1, DirectionUp)
	if err != nil {
		t.Fatalf("MoveField() error = %v", err)
	}
	if schema[0].ID != "2" || schema[1].ID != "1" {
		t.Errorf("order after move = %q,%q, want 2,1", schema[0].ID, schema[1].ID)
	}

	schema, err = store.MoveField(0, DirectionDown)
	if err != nil {
		t.Fatalf("MoveField() error = %v", err)
	}
	if schema[0].ID != "1" || schema[1].ID != "2" {
		t.Errorf("order after move back = %q,%q, want 1,2", schema[0].ID, schema[1].ID)
	}
}

func TestMoveField_OutOfBoundsIsNoOp(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name  string
		index int
		dir   Direction
	}{
		{"first up", 0, DirectionUp},
		{"last down", 8, DirectionDown},
		{"negative index", -1, DirectionDown},
		{"past end", 9, DirectionUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := store.MoveField(tt.index, tt.dir)
			if err != nil {
				t.Fatalf("MoveField() error = %v", err)
			}
			for i, f := range schema {
				if want := Default()[i].ID; f.ID != want {
					t.Fatalf("field[%d].ID = %q, want %q (unchanged)", i, f.ID, want)
				}
			}
		})
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AppendField(Field{Name: "Notes", Kind: KindText}); err != nil {
		t.Fatalf("AppendField() error = %v", err)
	}
	schema, err := store.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if len(schema) != 9 {
		t.Errorf("schema length = %d, want 9 after reset", len(schema))
	}
}

func TestStore_SQLiteBackend(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	defer database.Close()

	store := NewStore(db.NewDocuments(database))
	if _, err := store.AppendField(Field{Name: "Table Number", Kind: KindText}); err != nil {
		t.Fatalf("AppendField() error = %v", err)
	}

	// A second store over the same database sees the persisted schema.
	again := NewStore(db.NewDocuments(database))
	schema := again.Load()
	if len(schema) != 10 {
		t.Errorf("schema length = %d, want 10 from fresh store", len(schema))
	}
}
