package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"relish/internal/customer"
	"relish/internal/errors"
	"relish/internal/form"
	"relish/internal/ops"
	"relish/internal/view"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title      string
	Restaurant string
	Version    string
	Nav        string // active nav item: "dashboard", "customers", "fields", "qr"
}

// FormPageData is the template data for the public feedback form.
type FormPageData struct {
	PageData
	Fields form.Schema
}

// ThanksPageData is the template data for the post-submission page.
type ThanksPageData struct {
	PageData
	ID string
}

// DashboardPageData is the template data for the admin dashboard.
type DashboardPageData struct {
	PageData
	Analytics *ops.AnalyticsOutput
}

// CustomersPageData is the template data for the customer table page.
// SortLinks maps each sortable column to the URL that header should point
// at, with the toggle rule already applied.
type CustomersPageData struct {
	PageData
	Records    []customer.Record
	Stats      view.TableStats
	Total      int
	Filter     ops.ListInput
	SortLinks  map[string]string
	ExportLink string
}

// ExtensionView is one rendered extension answer on the detail page.
type ExtensionView struct {
	Label string
	HTML  template.HTML
}

// DetailPageData is the template data for the customer detail page.
type DetailPageData struct {
	PageData
	Record     customer.Record
	Extensions []ExtensionView
}

// FieldsPageData is the template data for the schema editor.
type FieldsPageData struct {
	PageData
	Fields form.Schema
}

// QRPageData is the template data for the printable QR page.
type QRPageData struct {
	PageData
	URL string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates  map[string]*template.Template
	version    string
	restaurant string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version, restaurant string) *Renderer {
	funcMap := template.FuncMap{
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"formatDate":  formatDate,
		"visitLabel":  visitLabel,
		"joinStrings": func(items []string) string { return strings.Join(items, ", ") },
		"answer":      func(v customer.Value) string { return v.AsString() },
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"form":      "form.html",
		"thanks":    "thanks.html",
		"dashboard": "dashboard.html",
		"customers": "customers.html",
		"detail":    "detail.html",
		"fields":    "fields.html",
		"qr":        "qr.html",
		"error":     "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates:  templates,
		version:    version,
		restaurant: restaurant,
	}
}

// page fills the common fields every template needs.
func (r *Renderer) page(title, nav string) PageData {
	return PageData{
		Title:      title,
		Restaurant: r.restaurant,
		Version:    r.version,
		Nav:        nav,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var rErr *errors.RelishError
	if !stderrors.As(err, &rErr) {
		rErr = errors.NewInternal(err)
	}

	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		renderJSON(w, rErr.Status, map[string]any{
			"error": map[string]any{
				"code":    string(rErr.Code),
				"message": rErr.Message,
				"status":  rErr.Status,
			},
		})
		return
	}

	r.renderPageStatus(w, rErr.Status, "error", ErrorPageData{
		PageData:   r.page(fmt.Sprintf("Error %d", rErr.Status), ""),
		StatusCode: rErr.Status,
		Message:    rErr.Message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark. Multiline
// answers are authored as free text; rendering them as markdown keeps
// paragraph breaks and lists readable on the detail page.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatDate formats a timestamp the way exports do: "Jun 1, 2025".
func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// visitLabel maps a canonical visit bucket back to its display label.
func visitLabel(bucket string) string {
	switch bucket {
	case customer.VisitFirst:
		return "First Time"
	case customer.VisitWeekly:
		return "Weekly"
	case customer.VisitMonthly:
		return "Monthly"
	default:
		return "Yearly"
	}
}
