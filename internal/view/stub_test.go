package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/api"
	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// stubBackend records every call and serves canned data, standing in for the
// REST client.
type stubBackend struct {
	mu sync.Mutex

	records []reading.RawRecord
	recent  []reading.RawRecord

	fetchErr  error
	createErr error
	updateErr error
	deleteErr error

	fetchCalls int
	lastParams api.FetchParams
	created    []api.ReadingPayload
	updated    map[int]api.ReadingPayload
	deleted    []int
}

func (s *stubBackend) FetchReadings(ctx context.Context, params api.FetchParams) ([]reading.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	s.lastParams = params
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]reading.RawRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *stubBackend) FetchRecent(ctx context.Context) ([]reading.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]reading.RawRecord, len(s.recent))
	copy(out, s.recent)
	return out, nil
}

func (s *stubBackend) CreateReading(ctx context.Context, payload api.ReadingPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, payload)
	return nil
}

func (s *stubBackend) UpdateReading(ctx context.Context, id int, payload api.ReadingPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updated == nil {
		s.updated = make(map[int]api.ReadingPayload)
	}
	s.updated[id] = payload
	return nil
}

func (s *stubBackend) DeleteReading(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBackend) setFetchErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

// makeRaws builds n records spread over a handful of locations, newest last
// so the default ordering has something to do.
func makeRaws(n int) []reading.RawRecord {
	locations := []string{"North Lake", "South River", "East Pond", "West Well"}
	out := make([]reading.RawRecord, n)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := range out {
		at := base.Add(time.Duration(i) * time.Hour)
		out[i] = reading.RawRecord{
			ID:          i + 1,
			Location:    locations[i%len(locations)],
			PHValue:     fmt.Sprintf("%.1f", 6.5+float64(i%4)*0.5),
			Temperature: fmt.Sprintf("%.1f", 20.0+float64(i%10)),
			Turbidity:   fmt.Sprintf("%.1f", float64(i%6)),
			Date:        at.Format("2006-01-02"),
			Time:        at.Format("15:04:05"),
		}
	}
	return out
}

// rawAt builds one record stamped at the given instant.
func rawAt(id int, at time.Time) reading.RawRecord {
	return reading.RawRecord{
		ID:          id,
		Location:    "North Lake",
		PHValue:     "7.0",
		Temperature: "21.0",
		Turbidity:   "2.0",
		Date:        at.Format("2006-01-02"),
		Time:        at.Format("15:04:05"),
	}
}

func testTableConfig() config.TableConfig {
	return config.TableConfig{
		PageSize:           10,
		MaxVisiblePages:    5,
		NewRecordThreshold: time.Hour,
	}
}

// clock is a controllable time source for banner and highlight tests.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestAdmin(backend Backend) (*Admin, *clock) {
	a := NewAdmin(backend, testTableConfig(), zap.NewNop())
	clk := newClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	a.now = clk.now
	return a, clk
}

func newTestTable(backend Backend) (*Table, *clock) {
	tb := NewTable(backend, testTableConfig(), zap.NewNop())
	clk := newClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	tb.now = clk.now
	return tb, clk
}

func newTestHome(backend Backend) (*Home, *clock) {
	h := NewHome(backend, testTableConfig(), zap.NewNop())
	clk := newClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	h.now = clk.now
	return h, clk
}
