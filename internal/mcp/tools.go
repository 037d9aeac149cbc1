package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var submitToolDef = mcp.NewTool("feedback_submit",
	mcp.WithDescription("Submit one piece of customer feedback. Answers are keyed by field id from form_fields; unparseable values degrade to defaults instead of failing."),
	mcp.WithObject("answers",
		mcp.Description("Raw answers keyed by field id. Values are strings, numbers, or string arrays depending on the field kind."),
	),
)

var listToolDef = mcp.NewTool("feedback_list",
	mcp.WithDescription("List customer records with optional filters and sorting. Returns the filtered records plus table summary stats."),
	mcp.WithString("search", mcp.Description("Case-insensitive substring match on name or email")),
	mcp.WithString("age_band", mcp.Description("Age band like '18-25', '26-35', '36-45', or '46+'")),
	mcp.WithString("gender", mcp.Description("Exact gender: male, female, or other")),
	mcp.WithNumber("days", mcp.Description("Keep records from the last N days (7, 30, 90, 365); 0 = all time")),
	mcp.WithString("sort_key", mcp.Description("Sort attribute: name, age, gender, place, or submittedAt")),
	mcp.WithString("sort_dir", mcp.Description("Sort direction: asc or desc")),
)

var analyticsToolDef = mcp.NewTool("feedback_analytics",
	mcp.WithDescription("Aggregate all feedback: visit-frequency and dietary histograms, top dishes and locations, and scalar totals."),
)

var exportToolDef = mcp.NewTool("feedback_export",
	mcp.WithDescription("Export customer records to an xlsx spreadsheet on disk. Filters match feedback_list."),
	mcp.WithString("path", mcp.Description("Destination path (.xlsx, must be in an allowed directory); default is the data directory's exports folder")),
	mcp.WithString("search", mcp.Description("Case-insensitive substring match on name or email")),
	mcp.WithString("age_band", mcp.Description("Age band like '18-25' or '46+'")),
	mcp.WithString("gender", mcp.Description("Exact gender: male, female, or other")),
	mcp.WithNumber("days", mcp.Description("Keep records from the last N days; 0 = all time")),
)

var clearToolDef = mcp.NewTool("feedback_clear",
	mcp.WithDescription("Irreversibly delete every customer record and restore the default form schema."),
	mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to confirm deletion")),
)

var fieldsToolDef = mcp.NewTool("form_fields",
	mcp.WithDescription("List the form schema: ordered field definitions with ids, kinds, and choices."),
)

var fieldAddToolDef = mcp.NewTool("form_field_add",
	mcp.WithDescription("Append a field to the form. The new field gets the next id; an empty name is a no-op."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Field label shown on the form")),
	mcp.WithString("kind", mcp.Description("Field kind: text, number, email, phone, multiline, single-choice, or multi-choice (default text)")),
	mcp.WithBoolean("required", mcp.Description("Whether the field is required on the form")),
	mcp.WithArray("choices", mcp.Description("Choice labels, for single-choice and multi-choice kinds")),
)

var fieldRemoveToolDef = mcp.NewTool("form_field_remove",
	mcp.WithDescription("Remove a field from the form by id. Stored records keep the answers they were collected with."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Field id to remove")),
)

var fieldMoveToolDef = mcp.NewTool("form_field_move",
	mcp.WithDescription("Swap a field with its neighbor to reorder the form. Out-of-bounds moves are no-ops."),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position of the field to move")),
	mcp.WithString("direction", mcp.Required(), mcp.Description("Direction to move: up or down")),
)

var fieldResetToolDef = mcp.NewTool("form_field_reset",
	mcp.WithDescription("Restore the built-in nine-field default form schema."),
)
