package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"relish/internal/customer"
	"relish/internal/errors"
	"relish/internal/form"
	"relish/internal/ops"
	"relish/internal/qr"
	"relish/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *ops.Env) *cli.App {
	app := &cli.App{
		Name:    "relish",
		Usage:   "Customer feedback for restaurants",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(env),
			submitCmd(env),
			listCmd(env),
			analyticsCmd(env),
			exportCmd(env),
			clearCmd(env),
			fieldsCmd(env),
			qrCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the feedback web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "Listen address (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			if addr := c.String("addr"); addr != "" {
				env.Config.ListenAddr = addr
			}
			srv := web.NewServer(env, Version)
			fmt.Fprintf(os.Stderr, "relish listening on http://%s\n", env.Config.ListenAddr)
			return web.Run(srv)
		},
	}
}

// submitCmd creates the submit command.
func submitCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Submit a feedback entry (reads a JSON answers object from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("answers must be piped via stdin as a JSON object keyed by field id"))
			}

			raw, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			var answers map[string]customer.Value
			if err := json.Unmarshal([]byte(raw), &answers); err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid answers JSON: %v", err)))
			}

			output, err := ops.Submit(env, ops.SubmitInput{Answers: answers})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List feedback entries with optional filters",
		Flags: append(filterFlags(),
			&cli.StringFlag{Name: "sort-key", Usage: "Sort key: name|age|gender|place|submitted_at"},
			&cli.StringFlag{Name: "sort-dir", Usage: "Sort direction: asc|desc"},
		),
		Action: func(c *cli.Context) error {
			output, err := ops.List(env, listInputFromFlags(c))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// analyticsCmd creates the analytics command.
func analyticsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "analytics",
		Usage: "Show aggregate statistics over all feedback",
		Action: func(c *cli.Context) error {
			output, err := ops.Analytics(env)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export feedback to an xlsx file",
		Flags: append(filterFlags(),
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.relish/exports/customer_data-<timestamp>.xlsx)"},
		),
		Action: func(c *cli.Context) error {
			output, err := ops.Export(env, ops.ExportInput{
				Path:   c.String("path"),
				Filter: listInputFromFlags(c),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete all feedback and restore the default form",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "confirm", Usage: "Required; clearing is irreversible"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Clear(env, ops.ClearInput{Confirm: c.Bool("confirm")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// fieldsCmd creates the fields command with its subcommands.
func fieldsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "Inspect and edit the feedback form",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the current form fields",
				Action: func(c *cli.Context) error {
					return outputJSON(ops.FieldsList(env))
				},
			},
			{
				Name:  "add",
				Usage: "Append a field to the form",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Field label"},
					&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: string(form.KindText), Usage: "Field kind: text|number|email|phone|multiline|single-choice|multi-choice"},
					&cli.BoolFlag{Name: "required", Usage: "Mark the field as required"},
					&cli.StringFlag{Name: "choices", Usage: "Comma-separated choices (choice kinds only)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.FieldAdd(env, ops.FieldAddInput{
						Name:     c.String("name"),
						Kind:     c.String("kind"),
						Required: c.Bool("required"),
						Choices:  parseChoices(c.String("choices")),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a field by id",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("field id is required"))
					}
					output, err := ops.FieldRemove(env, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "move",
				Usage: "Move a field up or down by index",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "Zero-based field index"},
					&cli.StringFlag{Name: "direction", Aliases: []string{"d"}, Value: "up", Usage: "Direction: up|down"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.FieldMove(env, ops.FieldMoveInput{
						Index:     c.Int("index"),
						Direction: c.String("direction"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "reset",
				Usage: "Restore the default form fields",
				Action: func(c *cli.Context) error {
					output, err := ops.FieldsReset(env)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// qrCmd creates the qr command.
func qrCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "qr",
		Usage: "Write a QR code PNG linking to the feedback form",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "relish-qr.png", Usage: "Output PNG path"},
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Value: qr.DefaultSize, Usage: "Image size in pixels"},
			&cli.StringFlag{Name: "url", Usage: "Form URL (defaults to public_url or listen address from config)"},
		},
		Action: func(c *cli.Context) error {
			url := c.String("url")
			if url == "" {
				url = env.Config.PublicURL
			}
			if url == "" {
				url = fmt.Sprintf("http://%s/", env.Config.ListenAddr)
			}

			png, err := qr.PNG(url, c.Int("size"))
			if err != nil {
				return outputError(err)
			}
			if err := os.WriteFile(c.String("out"), png, 0644); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{"path": c.String("out"), "url": url})
		},
	}
}

// Helper functions

// filterFlags returns the filter flags shared by list and export.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Usage: "Match against name or email"},
		&cli.StringFlag{Name: "age-band", Usage: "Age band: 18-25|26-35|36-45|46+"},
		&cli.StringFlag{Name: "gender", Usage: "Filter by gender: male|female|other"},
		&cli.IntFlag{Name: "days", Usage: "Only entries from the last N days"},
	}
}

// listInputFromFlags builds a ListInput from the shared filter flags.
func listInputFromFlags(c *cli.Context) ops.ListInput {
	return ops.ListInput{
		Search:  c.String("search"),
		AgeBand: c.String("age-band"),
		Gender:  c.String("gender"),
		Days:    c.Int("days"),
		SortKey: c.String("sort-key"),
		SortDir: c.String("sort-dir"),
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if rErr, ok := err.(*errors.RelishError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", rErr.Code, rErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseChoices splits a comma-separated string into a slice of choices.
func parseChoices(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	choices := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			choices = append(choices, t)
		}
	}
	return choices
}
