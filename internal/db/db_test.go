package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	// Use temp directory for test isolation
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	// Verify database file was created
	dbPath := filepath.Join(tmpDir, "relish.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}

	// Verify exports directory was created
	exportsDir := filepath.Join(tmpDir, "exports")
	info, err := os.Stat(exportsDir)
	if os.IsNotExist(err) {
		t.Errorf("exports directory not created at %s", exportsDir)
	} else if !info.IsDir() {
		t.Errorf("exports path is not a directory")
	}

	// Verify WAL mode is active
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		t.Fatalf("failed to query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}

	// Verify schema was created by checking for documents table
	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='documents'").Scan(&tableName)
	if err != nil {
		t.Fatalf("documents table not found: %v", err)
	}
}

func TestInit_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	baseDir := filepath.Join(tmpDir, "nested", "path", ".relish")

	db, err := Init(baseDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		t.Errorf("base directory not created at %s", baseDir)
	}
}

func TestUserVersion(t *testing.T) {
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	version, err := GetUserVersion(db)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version after Init = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestDocuments_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer database.Close()

	docs := NewDocuments(database)

	// Absent key
	_, ok, err := docs.Get("formFields")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent document")
	}

	// Put then Get
	if err := docs.Put("formFields", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	body, ok, err := docs.Get("formFields")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false after Put")
	}
	if string(body) != `[{"id":"1"}]` {
		t.Errorf("body = %s, want the stored document", body)
	}

	// Overwrite
	if err := docs.Put("formFields", []byte(`[]`)); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	body, _, _ = docs.Get("formFields")
	if string(body) != `[]` {
		t.Errorf("body after overwrite = %s, want []", body)
	}

	// Delete
	if err := docs.Delete("formFields"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, ok, _ = docs.Get("formFields")
	if ok {
		t.Error("Get() ok = true after Delete")
	}

	// Deleting an absent document is a no-op
	if err := docs.Delete("formFields"); err != nil {
		t.Errorf("Delete() on absent document error = %v", err)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("customerData")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent document")
	}

	if err := m.Put("customerData", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	body, ok, _ := m.Get("customerData")
	if !ok || string(body) != `[1,2,3]` {
		t.Errorf("Get() = %s, %v; want stored body, true", body, ok)
	}

	// Mutating the returned slice must not affect the stored copy
	body[0] = 'X'
	again, _, _ := m.Get("customerData")
	if string(again) != `[1,2,3]` {
		t.Errorf("stored body mutated through returned slice: %s", again)
	}

	if err := m.Delete("customerData"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := m.Get("customerData"); ok {
		t.Error("Get() ok = true after Delete")
	}
}
