package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"relish/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"feedback_submit": {
		def:     submitToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSubmit },
	},
	"feedback_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"feedback_analytics": {
		def:     analyticsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnalytics },
	},
	"feedback_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"feedback_clear": {
		def:     clearToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClear },
	},
	"form_fields": {
		def:     fieldsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFields },
	},
	"form_field_add": {
		def:     fieldAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFieldAdd },
	},
	"form_field_remove": {
		def:     fieldRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFieldRemove },
	},
	"form_field_move": {
		def:     fieldMoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFieldMove },
	},
	"form_field_reset": {
		def:     fieldResetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFieldReset },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Relish tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(env *ops.Env, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"relish",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(env)

	disabled := make(map[string]bool, len(env.Config.DisabledTools))
	for _, name := range env.Config.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(env *ops.Env, version string) error {
	s := NewServer(env, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
