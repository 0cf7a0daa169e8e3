package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/api"
	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/filter"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/sorting"
)

// Table is the read-only sensor table view model: server-side date/location
// filters, a local free-text search, and user-selected column sorting.
type Table struct {
	backend Backend
	logger  *zap.Logger

	newThreshold time.Duration
	now          func() time.Time

	mu        sync.Mutex
	date      string // server-side filter, YYYY-MM-DD
	location  string // server-side filter
	search    string
	sortField sorting.Field
	sortDir   sorting.Direction
	all       []reading.Reading
	rows      []reading.Reading // all narrowed by search, then sorted
	banners
}

// NewTable creates the table view model with the default newest-first
// ordering.
func NewTable(backend Backend, cfg config.TableConfig, logger *zap.Logger) *Table {
	return &Table{
		backend:      backend,
		logger:       logger,
		newThreshold: cfg.NewRecordThreshold,
		now:          time.Now,
		sortField:    sorting.FieldTimestamp,
		sortDir:      sorting.Descending,
	}
}

// Load fetches the collection with the active server-side filters and
// rebuilds the displayed rows. A fetch failure keeps the previous rows.
func (t *Table) Load(ctx context.Context) error {
	t.mu.Lock()
	params := api.FetchParams{Date: t.date, Location: t.location}
	t.mu.Unlock()

	raws, err := t.backend.FetchReadings(ctx, params)
	if err != nil {
		t.mu.Lock()
		t.setError("Failed to fetch data. Please try again later.")
		t.mu.Unlock()
		return err
	}

	normalized := reading.Normalize(raws)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = normalized
	t.rebuildLocked()
	t.setSuccess("Data loaded successfully", t.now())

	t.logger.Debug("table data loaded",
		zap.Int("total", len(t.all)),
		zap.Int("displayed", len(t.rows)))
	return nil
}

// SetDate sets the server-side date filter; takes effect on the next Load.
func (t *Table) SetDate(date string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.date = date
}

// SetLocation sets the server-side location filter; takes effect on the
// next Load.
func (t *Table) SetLocation(location string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.location = location
}

// SetSearch applies the local free-text search.
func (t *Table) SetSearch(term string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.search = term
	t.rebuildLocked()
}

// ToggleSort sorts by the given column: selecting the active column flips
// the direction, selecting a new column starts ascending.
func (t *Table) ToggleSort(field sorting.Field) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if field == t.sortField {
		if t.sortDir == sorting.Ascending {
			t.sortDir = sorting.Descending
		} else {
			t.sortDir = sorting.Ascending
		}
	} else {
		t.sortField = field
		t.sortDir = sorting.Ascending
	}
	t.rebuildLocked()
}

// Sort returns the active sort column and direction.
func (t *Table) Sort() (sorting.Field, sorting.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sortField, t.sortDir
}

// Reset clears every filter and restores the default ordering; the caller
// should Load afterwards to drop the server-side filters too.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.date = ""
	t.location = ""
	t.search = ""
	t.sortField = sorting.FieldTimestamp
	t.sortDir = sorting.Descending
	t.rebuildLocked()
}

// Rows returns the displayed rows.
func (t *Table) Rows() []reading.Reading {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]reading.Reading, len(t.rows))
	copy(out, t.rows)
	return out
}

// Locations returns the distinct locations in the current collection.
func (t *Table) Locations() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return reading.Locations(t.all)
}

// IsNew reports whether the row should carry the "new" highlight.
func (t *Table) IsNew(r reading.Reading) bool {
	return r.IsNewAt(t.now(), t.newThreshold)
}

// Error returns the sticky error banner, if any.
func (t *Table) Error() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errorMessage()
}

// Success returns the success banner if it has not expired yet.
func (t *Table) Success() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.successMessage(t.now())
}

// rebuildLocked recomputes the displayed rows from the raw collection.
// Callers must hold t.mu.
func (t *Table) rebuildLocked() {
	t.rows = sorting.Apply(filter.Apply(t.all, filter.Spec{SearchTerm: t.search}), t.sortField, t.sortDir)
}
