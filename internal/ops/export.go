package ops

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"relish/internal/errors"
	"relish/internal/export"
)

// ExportInput contains parameters for the Export operation. The filter is
// applied before writing, so the spreadsheet matches what the table view
// would show.
type ExportInput struct {
	Path   string    `json:"path,omitempty"` // default: <data dir>/exports/customer_data-<timestamp>.xlsx
	Filter ListInput `json:"filter,omitempty"`
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes the filtered record set to an xlsx file. The file is
// written to a temp path and renamed into place, so a failure never
// clobbers an existing export.
func Export(env *Env, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	exportPath := input.Path
	if exportPath == "" {
		stamp := now.Format("2006-01-02T150405")
		exportPath = filepath.Join(env.ExportsDir(), fmt.Sprintf("customer_data-%s.xlsx", stamp))
	}

	// Validate both user-provided and default paths.
	if err := env.ValidateExportPath(exportPath); err != nil {
		return nil, err
	}

	listing, err := List(env, input.Filter)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Clean up the temp file on failure; the original file is preserved.
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if err := export.WriteXLSX(file, listing.Records); err != nil {
		return nil, err
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before the rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// On Windows, os.Rename fails if the destination exists. Failing safely
	// preserves the existing file instead of risking a non-atomic
	// delete+rename.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Count:      len(listing.Records),
		ExportedAt: now.Unix(),
	}, nil
}
