// Package ops implements the operations shared by the CLI, the web UI, and
// the MCP server: submitting feedback, listing and aggregating records,
// editing the form schema, exporting, and clearing. Each operation takes an
// explicit Env so tests can inject isolated in-memory stores.
package ops

import (
	"path/filepath"

	"relish/internal/config"
	"relish/internal/customer"
	"relish/internal/form"
)

// Env bundles the handles every operation works against. Construct it once
// at startup and pass it to each call; nothing here is ambient.
type Env struct {
	BaseDir string // data directory, typically ~/.relish
	Fields  *form.Store
	Records *customer.Store
	Config  *config.Config
}

// ExportsDir returns the default directory for export files.
func (e *Env) ExportsDir() string {
	return filepath.Join(e.BaseDir, "exports")
}
