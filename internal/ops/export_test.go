package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"relish/internal/customer"
	"relish/internal/errors"
	"relish/internal/export"
)

func TestExport_DefaultPath(t *testing.T) {
	env := newTestEnv(t)
	submitN(t, env,
		map[string]customer.Value{"1": customer.String("Asha")},
		map[string]customer.Value{"1": customer.String("Ben")},
	)

	out, err := Export(env, ExportInput{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}
	if filepath.Dir(out.Path) != env.ExportsDir() {
		t.Errorf("Path = %q, want inside %q", out.Path, env.ExportsDir())
	}
	if !strings.HasSuffix(out.Path, ".xlsx") {
		t.Errorf("Path = %q, want .xlsx suffix", out.Path)
	}

	f, err := excelize.OpenFile(out.Path)
	if err != nil {
		t.Fatalf("exported file does not open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want header + 2", len(rows))
	}
}

func TestExport_AppliesFilter(t *testing.T) {
	env := newTestEnv(t)
	submitN(t, env,
		map[string]customer.Value{"1": customer.String("Asha"), "2": customer.String("30")},
		map[string]customer.Value{"1": customer.String("Ben"), "2": customer.String("50")},
	)

	out, err := Export(env, ExportInput{Filter: ListInput{AgeBand: "26-35"}})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("Count = %d, want 1 filtered row", out.Count)
	}
}

func TestExport_RejectsPathOutsideAllowedDirs(t *testing.T) {
	env := newTestEnv(t)

	_, err := Export(env, ExportInput{Path: filepath.Join(t.TempDir(), "out.xlsx")})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Export to arbitrary dir error = %v, want INVALID_REQUEST", err)
	}
}

func TestExport_AllowedPathsConfig(t *testing.T) {
	env := newTestEnv(t)
	extra := t.TempDir()
	env.Config.AllowedPaths = []string{extra}

	out, err := Export(env, ExportInput{Path: filepath.Join(extra, "out.xlsx")})
	if err != nil {
		t.Fatalf("Export to allowed dir failed: %v", err)
	}
	if _, err := os.Stat(out.Path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestValidateExportPath(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"traversal", env.ExportsDir() + string(filepath.Separator) + ".." + string(filepath.Separator) + "escape.xlsx"},
		{"wrong extension", filepath.Join(env.ExportsDir(), "out.csv")},
		{"subdirectory", filepath.Join(env.ExportsDir(), "nested", "out.xlsx")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.ValidateExportPath(tt.path)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("ValidateExportPath(%q) error = %v, want INVALID_REQUEST", tt.path, err)
			}
		})
	}

	if err := env.ValidateExportPath(filepath.Join(env.ExportsDir(), "ok.xlsx")); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
}

func TestValidateExportPath_UnsafeMode(t *testing.T) {
	env := newTestEnv(t)
	env.Config.AllowUnsafePaths = true

	if err := env.ValidateExportPath(filepath.Join(t.TempDir(), "anywhere.xlsx")); err != nil {
		t.Errorf("unsafe mode rejected arbitrary dir: %v", err)
	}
	// Extension still enforced.
	err := env.ValidateExportPath(filepath.Join(t.TempDir(), "anywhere.csv"))
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("unsafe mode accepted wrong extension: %v", err)
	}
}
