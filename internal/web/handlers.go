package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"relish/internal/customer"
	"relish/internal/errors"
	"relish/internal/export"
	"relish/internal/form"
	"relish/internal/ops"
	"relish/internal/qr"
	"relish/internal/view"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	env      *ops.Env
	renderer *Renderer
	formURL  string
}

// HandleForm handles GET /{$}: the public feedback form.
func (h *Handlers) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "form", FormPageData{
		PageData: h.renderer.page("Share Your Feedback", ""),
		Fields:   ops.FieldsList(h.env),
	})
}

// HandleSubmit handles POST /submit: normalize and store one submission.
func (h *Handlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	schema := ops.FieldsList(h.env)
	answers := make(map[string]customer.Value, len(schema))
	for _, f := range schema {
		key := "field_" + f.ID
		switch f.Kind {
		case form.KindMultiChoice:
			if picked, ok := r.Form[key]; ok {
				answers[f.ID] = customer.List(picked)
			}
		case form.KindNumber:
			raw := r.FormValue(key)
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				answers[f.ID] = customer.Number(n)
			} else {
				answers[f.ID] = customer.String(raw)
			}
		default:
			answers[f.ID] = customer.String(r.FormValue(key))
		}
	}

	out, err := ops.Submit(h.env, ops.SubmitInput{Answers: answers})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/thanks?id="+out.ID, http.StatusSeeOther)
}

// HandleThanks handles GET /thanks: the post-submission page.
func (h *Handlers) HandleThanks(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "thanks", ThanksPageData{
		PageData: h.renderer.page("Thank You", ""),
		ID:       r.URL.Query().Get("id"),
	})
}

// HandleDashboard handles GET /admin: analytics dashboard.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	analytics, err := ops.Analytics(h.env)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "dashboard", DashboardPageData{
		PageData:  h.renderer.page("Dashboard", "dashboard"),
		Analytics: analytics,
	})
}

// HandleCustomers handles GET /admin/customers: the filtered, sorted table.
func (h *Handlers) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	input := listInputFromQuery(r)

	result, err := ops.List(h.env, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "customers", CustomersPageData{
		PageData:   h.renderer.page("Customers", "customers"),
		Records:    result.Records,
		Stats:      result.Stats,
		Total:      result.Total,
		Filter:     input,
		SortLinks:  sortLinks(input),
		ExportLink: "/admin/customers/export?" + filterQuery(input).Encode(),
	})
}

// filterQuery writes the non-empty filter parameters back out as a query.
func filterQuery(input ops.ListInput) url.Values {
	q := url.Values{}
	if input.Search != "" {
		q.Set("search", input.Search)
	}
	if input.AgeBand != "" {
		q.Set("age_band", input.AgeBand)
	}
	if input.Gender != "" {
		q.Set("gender", input.Gender)
	}
	if input.Days > 0 {
		q.Set("days", strconv.Itoa(input.Days))
	}
	if input.SortKey != "" {
		q.Set("sort", input.SortKey)
		q.Set("dir", input.SortDir)
	}
	return q
}

// sortLinks builds the header URLs for the customer table, applying the
// sort-toggle rule to each column.
func sortLinks(input ops.ListInput) map[string]string {
	current := view.Params{
		SortKey: view.SortKey(input.SortKey),
		SortDir: view.SortDir(input.SortDir),
	}

	links := make(map[string]string, 5)
	for _, key := range []view.SortKey{
		view.SortName, view.SortAge, view.SortGender, view.SortPlace, view.SortSubmittedAt,
	} {
		nextKey, nextDir := view.NextSort(current, key)
		q := filterQuery(input)
		q.Set("sort", string(nextKey))
		q.Set("dir", string(nextDir))
		links[string(key)] = "/admin/customers?" + q.Encode()
	}
	return links
}

// HandleCustomerDetail handles GET /admin/customers/{id}: one record.
func (h *Handlers) HandleCustomerDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("customer ID is required"))
		return
	}

	records, err := h.env.Records.LoadAll()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	for _, rec := range records {
		if rec.ID != id {
			continue
		}

		extensions := make([]ExtensionView, 0, len(rec.ExtensionFields))
		for _, ext := range rec.ExtensionFields {
			extensions = append(extensions, ExtensionView{
				Label: ext.Label,
				HTML:  renderMarkdown(ext.Value.AsString()),
			})
		}

		h.renderer.renderPage(w, "detail", DetailPageData{
			PageData:   h.renderer.page(rec.Name, "customers"),
			Record:     rec,
			Extensions: extensions,
		})
		return
	}

	h.renderer.renderError(w, r, errors.NewNotFound(id))
}

// HandleExport handles GET /admin/customers/export: download the filtered
// table as customer_data.xlsx.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.env, listInputFromQuery(r))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	if err := export.WriteXLSX(w, result.Records); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}

// HandleFields handles GET /admin/fields: the schema editor.
func (h *Handlers) HandleFields(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "fields", FieldsPageData{
		PageData: h.renderer.page("Form Fields", "fields"),
		Fields:   ops.FieldsList(h.env),
	})
}

// HandleFieldAdd handles POST /admin/fields: append a field.
func (h *Handlers) HandleFieldAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	input := ops.FieldAddInput{
		Name:     r.FormValue("name"),
		Kind:     r.FormValue("kind"),
		Required: r.FormValue("required") == "on",
	}
	if choices := strings.TrimSpace(r.FormValue("choices")); choices != "" {
		for _, c := range strings.Split(choices, ",") {
			if c = strings.TrimSpace(c); c != "" {
				input.Choices = append(input.Choices, c)
			}
		}
	}

	if _, err := ops.FieldAdd(h.env, input); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/fields", http.StatusSeeOther)
}

// HandleFieldRemove handles POST /admin/fields/{id}/delete.
func (h *Handlers) HandleFieldRemove(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.FieldRemove(h.env, r.PathValue("id")); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/fields", http.StatusSeeOther)
}

// HandleFieldMove handles POST /admin/fields/move.
func (h *Handlers) HandleFieldMove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("index must be an integer"))
		return
	}

	input := ops.FieldMoveInput{Index: index, Direction: r.FormValue("direction")}
	if _, err := ops.FieldMove(h.env, input); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/fields", http.StatusSeeOther)
}

// HandleFieldsReset handles POST /admin/fields/reset.
func (h *Handlers) HandleFieldsReset(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.FieldsReset(h.env); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/fields", http.StatusSeeOther)
}

// HandleQRPage handles GET /admin/qr: the printable QR card.
func (h *Handlers) HandleQRPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "qr", QRPageData{
		PageData: h.renderer.page("QR Code", "qr"),
		URL:      h.formURL,
	})
}

// HandleQRImage handles GET /qr.png: the QR code image linking to the form.
func (h *Handlers) HandleQRImage(w http.ResponseWriter, r *http.Request) {
	png, err := qr.PNG(h.formURL, qr.DefaultSize)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// HandleClear handles POST /admin/clear: wipe all data.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	if _, err := ops.Clear(h.env, ops.ClearInput{Confirm: true}); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// listInputFromQuery reads the table filter/sort parameters.
func listInputFromQuery(r *http.Request) ops.ListInput {
	return ops.ListInput{
		Search:  r.URL.Query().Get("search"),
		AgeBand: r.URL.Query().Get("age_band"),
		Gender:  r.URL.Query().Get("gender"),
		Days:    parseIntParam(r, "days", 0),
		SortKey: r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
