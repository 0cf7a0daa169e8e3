package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/api"
	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/export"
	"github.com/aquaview/water-quality-dashboard/internal/filter"
	"github.com/aquaview/water-quality-dashboard/internal/paging"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/sorting"
	"github.com/aquaview/water-quality-dashboard/internal/stats"
	"github.com/aquaview/water-quality-dashboard/internal/validate"
)

// Admin is the admin dashboard view model: the full collection with
// filtering, paging, summary stats, per-location insights, CRUD intents,
// and exports. All state transitions happen under one lock so a reader
// never observes a half-applied filter or page change.
type Admin struct {
	backend Backend
	logger  *zap.Logger

	pageSize     int
	maxVisible   int
	newThreshold time.Duration
	now          func() time.Time

	mu          sync.Mutex
	all         []reading.Reading // normalized, newest first
	displayed   []reading.Reading // all narrowed by spec, order preserved
	spec        filter.Spec
	page        int
	summary     stats.Summary
	lastUpdated time.Time
	banners
}

// NewAdmin creates the admin view model.
func NewAdmin(backend Backend, cfg config.TableConfig, logger *zap.Logger) *Admin {
	return &Admin{
		backend:      backend,
		logger:       logger,
		pageSize:     cfg.PageSize,
		maxVisible:   cfg.MaxVisiblePages,
		newThreshold: cfg.NewRecordThreshold,
		now:          time.Now,
		page:         1,
	}
}

// Load fetches the full collection and rebuilds the derived state. On
// failure the previous collection stays in place and the error becomes a
// banner.
func (a *Admin) Load(ctx context.Context) error {
	raws, err := a.backend.FetchReadings(ctx, api.FetchParams{})
	if err != nil {
		a.mu.Lock()
		a.setError("Failed to fetch data. Please try again later.")
		a.mu.Unlock()
		return err
	}

	rows := sorting.Default(reading.Normalize(raws))

	a.mu.Lock()
	defer a.mu.Unlock()
	a.all = rows
	a.summary = stats.Summarize(rows)
	a.lastUpdated = a.now()
	a.displayed = filter.Apply(a.all, a.spec)
	a.dismissError()

	a.logger.Debug("admin data loaded",
		zap.Int("total", len(a.all)),
		zap.Int("displayed", len(a.displayed)))
	return nil
}

// SetFilter replaces the filter spec. Any change resets the page to 1 so a
// narrower result never strands the user on an empty trailing page.
func (a *Admin) SetFilter(spec filter.Spec) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if spec == a.spec {
		return
	}
	a.spec = spec
	a.displayed = filter.Apply(a.all, a.spec)
	a.page = 1
}

// SetSearch updates just the free-text term of the filter.
func (a *Admin) SetSearch(term string) {
	a.mu.Lock()
	spec := a.spec
	a.mu.Unlock()
	spec.SearchTerm = term
	a.SetFilter(spec)
}

// Filter returns the active filter spec.
func (a *Admin) Filter() filter.Spec {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.spec
}

// SetPage requests a page; out-of-range values clamp when the page is read.
func (a *Admin) SetPage(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.page = n
}

// Page returns the rows of the current page plus page metadata.
func (a *Admin) Page() ([]reading.Reading, paging.Meta) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rows, meta := paging.Slice(a.displayed, a.page, a.pageSize)
	a.page = meta.CurrentPage
	return rows, meta
}

// PageWindow returns the page-number buttons to render for the current page.
func (a *Admin) PageWindow() []int {
	_, meta := a.Page()
	return paging.Window(meta.CurrentPage, meta.TotalPages, a.maxVisible)
}

// Summary returns the headline stats over the full (unfiltered) collection.
func (a *Admin) Summary() (stats.Summary, time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.summary, a.lastUpdated
}

// Insights returns the per-location quality scores, best first.
func (a *Admin) Insights() []stats.LocationInsight {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.ByLocation(a.all)
}

// Locations returns the distinct locations available for the filter
// dropdown.
func (a *Admin) Locations() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return reading.Locations(a.all)
}

// IsNew reports whether the row should carry the "new" highlight.
func (a *Admin) IsNew(r reading.Reading) bool {
	return r.IsNewAt(a.now(), a.newThreshold)
}

// Create validates the form and posts a new record. Validation failures are
// returned as per-field messages without touching the network.
func (a *Admin) Create(ctx context.Context, form validate.Form) (map[string]string, error) {
	if errs := validate.Check(form); len(errs) > 0 {
		return errs, nil
	}

	if err := a.backend.CreateReading(ctx, validate.ToPayload(form, a.now())); err != nil {
		a.mu.Lock()
		a.setError("Failed to create record. Please try again later.")
		a.mu.Unlock()
		return nil, err
	}

	a.mu.Lock()
	a.setSuccess("New record created successfully!", a.now())
	a.mu.Unlock()

	// Pick up the backend-assigned id.
	return nil, a.Load(ctx)
}

// Update validates the form and replaces the record's mutable fields.
func (a *Admin) Update(ctx context.Context, id int, form validate.Form) (map[string]string, error) {
	if errs := validate.Check(form); len(errs) > 0 {
		return errs, nil
	}

	if err := a.backend.UpdateReading(ctx, id, validate.ToPayload(form, a.now())); err != nil {
		a.mu.Lock()
		a.setError("Failed to update record. Please try again later.")
		a.mu.Unlock()
		return nil, err
	}

	a.mu.Lock()
	a.setSuccess("Record updated successfully!", a.now())
	a.mu.Unlock()
	return nil, a.Load(ctx)
}

// Delete removes the record remotely, then drops it from the local
// collection by id. Deleting an id that is already gone is a no-op locally,
// so a repeated delete cannot corrupt state.
func (a *Admin) Delete(ctx context.Context, id int) error {
	if err := a.backend.DeleteReading(ctx, id); err != nil {
		a.mu.Lock()
		a.setError("Failed to delete record. Please try again later.")
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.all = removeByID(a.all, id)
	a.displayed = removeByID(a.displayed, id)
	a.summary = stats.Summarize(a.all)
	a.setSuccess("Record deleted successfully!", a.now())
	return nil
}

// ExportCSV renders the displayed rows as CSV and returns the content plus
// the conventional filename.
func (a *Admin) ExportCSV() ([]byte, string, error) {
	a.mu.Lock()
	rows := make([]reading.Reading, len(a.displayed))
	copy(rows, a.displayed)
	a.mu.Unlock()

	data, err := export.CSV(rows)
	if err != nil {
		return nil, "", err
	}
	return data, export.CSVFilename(a.now()), nil
}

// ExportXLSX renders the displayed rows as a spreadsheet.
func (a *Admin) ExportXLSX() ([]byte, string, error) {
	a.mu.Lock()
	rows := make([]reading.Reading, len(a.displayed))
	copy(rows, a.displayed)
	a.mu.Unlock()

	data, err := export.XLSX(rows)
	if err != nil {
		return nil, "", err
	}
	return data, export.XLSXFilename(a.now()), nil
}

// Error returns the sticky error banner, if any.
func (a *Admin) Error() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errorMessage()
}

// DismissError clears the error banner.
func (a *Admin) DismissError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dismissError()
}

// Success returns the success banner if it has not expired yet.
func (a *Admin) Success() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.successMessage(a.now())
}

func removeByID(rs []reading.Reading, id int) []reading.Reading {
	out := rs[:0]
	for _, r := range rs {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
