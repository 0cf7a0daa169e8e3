package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/sorting"
	"github.com/aquaview/water-quality-dashboard/internal/stats"
)

// Home is the landing-page view model: the recent readings plus headline
// stats computed over them.
type Home struct {
	backend Backend
	logger  *zap.Logger

	newThreshold time.Duration
	now          func() time.Time

	mu      sync.Mutex
	recent  []reading.Reading // newest first
	summary stats.Summary
	banners
}

// NewHome creates the home view model.
func NewHome(backend Backend, cfg config.TableConfig, logger *zap.Logger) *Home {
	return &Home{
		backend:      backend,
		logger:       logger,
		newThreshold: cfg.NewRecordThreshold,
		now:          time.Now,
	}
}

// Load fetches the recent readings and recomputes the summary. A fetch
// failure keeps the previous readings.
func (h *Home) Load(ctx context.Context) error {
	raws, err := h.backend.FetchRecent(ctx)
	if err != nil {
		h.mu.Lock()
		h.setError("Failed to fetch recent data. Please try again later.")
		h.mu.Unlock()
		return err
	}

	rows := sorting.Default(reading.Normalize(raws))

	h.mu.Lock()
	defer h.mu.Unlock()
	h.recent = rows
	h.summary = stats.Summarize(rows)
	h.dismissError()

	h.logger.Debug("home data loaded", zap.Int("recent", len(h.recent)))
	return nil
}

// Recent returns the recent readings, newest first.
func (h *Home) Recent() []reading.Reading {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]reading.Reading, len(h.recent))
	copy(out, h.recent)
	return out
}

// Summary returns the headline stats over the recent readings.
func (h *Home) Summary() stats.Summary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.summary
}

// Locations returns the distinct locations among the recent readings.
func (h *Home) Locations() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return reading.Locations(h.recent)
}

// IsNew reports whether the row should carry the "new" highlight.
func (h *Home) IsNew(r reading.Reading) bool {
	return r.IsNewAt(h.now(), h.newThreshold)
}

// Error returns the sticky error banner, if any.
func (h *Home) Error() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errorMessage()
}
