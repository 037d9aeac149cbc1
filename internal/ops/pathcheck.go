package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"relish/internal/errors"
)

// ValidateExportPath checks a destination for the Export operation:
// 1. Path traversal (.. sequences)
// 2. Extension (.xlsx required)
// 3. Directory restrictions (file must be DIRECTLY in the exports dir or an
//    allowed_paths entry - no subdirectories)
// 4. Symlink safety (neither the parent dir nor the file may be a symlink)
//
// The "no subdirectories" rule eliminates TOCTOU races where an intermediate
// directory component is swapped for a symlink between validation and open.
// Combined with O_NOFOLLOW on the final component, symlinks are fully
// rejected.
func (e *Env) ValidateExportPath(path string) error {
	if path == "" {
		return errors.NewInvalidRequest("path is required")
	}

	if containsTraversal(path) {
		return errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	if filepath.Ext(cleaned) != ".xlsx" {
		return errors.NewInvalidRequest("path must have .xlsx extension")
	}

	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}

	// Unsafe mode skips directory checks but never symlink checks;
	// O_NOFOLLOW would reject the symlink at open time anyway, this just
	// gives a clearer error.
	if e.Config != nil && e.Config.AllowUnsafePaths {
		return rejectSymlink(absPath)
	}

	allowedDirs, err := e.allowedExportDirs()
	if err != nil {
		return err
	}

	parentDir := filepath.Dir(absPath)
	if !isDirectlyInAllowedDir(parentDir, allowedDirs) {
		return errors.NewInvalidRequest(
			fmt.Sprintf("file must be directly in an allowed directory (no subdirectories); allowed: %v",
				allowedDirs))
	}

	if info, err := os.Lstat(parentDir); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return errors.NewInvalidRequest("parent directory must not be a symlink")
		}
	}

	return rejectSymlink(absPath)
}

func rejectSymlink(absPath string) error {
	if info, err := os.Lstat(absPath); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return errors.NewInvalidRequest("path must not be a symlink")
		}
	}
	return nil
}

// allowedExportDirs returns the directories exports may land in: the data
// directory's exports/ plus any absolute allowed_paths entries, with
// symlinked entries resolved so matching happens against real paths.
func (e *Env) allowedExportDirs() ([]string, error) {
	dirs := []string{e.ExportsDir()}
	if e.Config != nil {
		for _, p := range e.Config.AllowedPaths {
			if filepath.IsAbs(p) {
				dirs = append(dirs, filepath.Clean(p))
			}
		}
	}

	result := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := filepath.Abs(filepath.Clean(d))
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid allowed path: %v", err))
		}
		if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(abs)
			if err != nil {
				return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot resolve symlink in allowed path: %v", err))
			}
			abs = resolved
		}
		result = append(result, abs)
	}
	return result, nil
}

// isDirectlyInAllowedDir checks if parentDir exactly matches one of the
// allowed directories. Stricter than "is under": a file in a subdirectory
// does not qualify.
func isDirectlyInAllowedDir(parentDir string, allowedDirs []string) bool {
	parentDir = filepath.Clean(parentDir)
	for _, dir := range allowedDirs {
		if parentDir == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// containsTraversal checks if path contains ".." directory traversal.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	// Also check forward slashes on all platforms (e.g. user input).
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}
