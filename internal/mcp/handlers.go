package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"relish/internal/customer"
	"relish/internal/errors"
	"relish/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env *ops.Env
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env *ops.Env) *Handlers {
	return &Handlers{env: env}
}

// Request types for each tool

// SubmitRequest represents the arguments for feedback_submit.
type SubmitRequest struct {
	Answers map[string]customer.Value `json:"answers,omitempty"`
}

// ListRequest represents the arguments for feedback_list and the filter
// part of feedback_export.
type ListRequest struct {
	Search  string `json:"search,omitempty"`
	AgeBand string `json:"age_band,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Days    int    `json:"days,omitempty"`
	SortKey string `json:"sort_key,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
}

// ExportRequest represents the arguments for feedback_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
	ListRequest
}

// ClearRequest represents the arguments for feedback_clear.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// FieldAddRequest represents the arguments for form_field_add.
type FieldAddRequest struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind,omitempty"`
	Required bool     `json:"required,omitempty"`
	Choices  []string `json:"choices,omitempty"`
}

// FieldRemoveRequest represents the arguments for form_field_remove.
type FieldRemoveRequest struct {
	ID string `json:"id"`
}

// FieldMoveRequest represents the arguments for form_field_move.
type FieldMoveRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

// Handler implementations

// HandleSubmit handles the feedback_submit tool call.
func (h *Handlers) HandleSubmit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SubmitRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Submit(h.env, ops.SubmitInput{Answers: input.Answers})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the feedback_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.env, listInput(input))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAnalytics handles the feedback_analytics tool call.
func (h *Handlers) HandleAnalytics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Analytics(h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleExport handles the feedback_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.env, ops.ExportInput{
		Path:   input.Path,
		Filter: listInput(input.ListRequest),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleClear handles the feedback_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Clear(h.env, ops.ClearInput{Confirm: input.Confirm})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFields handles the form_fields tool call.
func (h *Handlers) HandleFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.FieldsList(h.env))
}

// HandleFieldAdd handles the form_field_add tool call.
func (h *Handlers) HandleFieldAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FieldAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FieldAdd(h.env, ops.FieldAddInput{
		Name:     input.Name,
		Kind:     input.Kind,
		Required: input.Required,
		Choices:  input.Choices,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFieldRemove handles the form_field_remove tool call.
func (h *Handlers) HandleFieldRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FieldRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FieldRemove(h.env, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFieldMove handles the form_field_move tool call.
func (h *Handlers) HandleFieldMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FieldMoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FieldMove(h.env, ops.FieldMoveInput{
		Index:     input.Index,
		Direction: input.Direction,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFieldReset handles the form_field_reset tool call.
func (h *Handlers) HandleFieldReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.FieldsReset(h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

func listInput(input ListRequest) ops.ListInput {
	return ops.ListInput{
		Search:  input.Search,
		AgeBand: input.AgeBand,
		Gender:  input.Gender,
		Days:    input.Days,
		SortKey: input.SortKey,
		SortDir: input.SortDir,
	}
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var rErr *errors.RelishError
	if stderrors.As(err, &rErr) && rErr.Code != errors.ErrInternal {
		errorObj := map[string]any{
			"code":    rErr.Code,
			"message": rErr.Message,
			"status":  rErr.Status,
		}
		if rErr.Details != nil {
			errorObj["details"] = rErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
