// Package view holds the per-page view models. Each view model owns one
// collection of readings and composes the normalizer, filter, sort,
// aggregation, and paging engines over it; mutations go through the backend
// client and are mirrored locally.
package view

import (
	"context"
	"time"

	"github.com/aquaview/water-quality-dashboard/internal/api"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// Backend is the slice of the API client the view models need.
type Backend interface {
	FetchReadings(ctx context.Context, params api.FetchParams) ([]reading.RawRecord, error)
	FetchRecent(ctx context.Context) ([]reading.RawRecord, error)
	CreateReading(ctx context.Context, payload api.ReadingPayload) error
	UpdateReading(ctx context.Context, id int, payload api.ReadingPayload) error
	DeleteReading(ctx context.Context, id int) error
}

// successTTL is how long success banners stay visible. Error banners are
// sticky: they stay until dismissed or superseded.
const successTTL = 3 * time.Second

// banners holds the transient message state every view carries.
type banners struct {
	errMsg    string
	success   string
	successAt time.Time
}

func (b *banners) setError(msg string) {
	b.errMsg = msg
}

func (b *banners) setSuccess(msg string, now time.Time) {
	b.errMsg = ""
	b.success = msg
	b.successAt = now
}

func (b *banners) dismissError() {
	b.errMsg = ""
}

func (b *banners) errorMessage() string {
	return b.errMsg
}

func (b *banners) successMessage(now time.Time) string {
	if b.success == "" || now.Sub(b.successAt) > successTTL {
		return ""
	}
	return b.success
}
