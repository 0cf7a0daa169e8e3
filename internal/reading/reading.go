package reading

import (
	"math"
	"strconv"
	"time"
)

// TimestampLayout is the canonical "date time" format used for display and
// for deriving the numeric sort key.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultTime is substituted when a raw record arrives without a time of day.
const DefaultTime = "00:00:00"

// DefaultStatus is substituted when a raw record arrives without a status tag.
const DefaultStatus = "active"

// RawRecord is a sensor record as received from the backend, before
// normalization. Numeric fields are kept as strings because the API is not
// consistent about emitting numbers vs quoted numbers.
type RawRecord struct {
	ID          int
	Location    string
	PHValue     string
	Temperature string
	Turbidity   string
	Date        string
	Time        string
	Status      string
}

// Reading is the canonical in-memory record the table engine operates on.
// Timestamp and SortKey are derived from Date+Time and are never sent back
// to the backend; the api package owns that boundary.
type Reading struct {
	ID          int
	Location    string
	PHValue     float64 // NaN when the source value was unparseable
	Temperature float64
	Turbidity   float64

	// Original string forms, used for display and free-text search so that
	// unparseable values still render as received.
	RawPHValue     string
	RawTemperature string
	RawTurbidity   string

	Date   string
	Time   string
	Status string

	Timestamp string // canonical "YYYY-MM-DD HH:mm:ss", empty when Date is missing
	SortKey   int64  // epoch milliseconds, 0 when Date is missing or unparseable
}

// Normalize converts a batch of raw records into canonical Readings.
// It is a pure, linear transform: the input is not modified and the output
// order matches the input order.
func Normalize(raws []RawRecord) []Reading {
	out := make([]Reading, 0, len(raws))
	for _, raw := range raws {
		out = append(out, normalizeOne(raw))
	}
	return out
}

func normalizeOne(raw RawRecord) Reading {
	r := Reading{
		ID:             raw.ID,
		Location:       raw.Location,
		RawPHValue:     raw.PHValue,
		RawTemperature: raw.Temperature,
		RawTurbidity:   raw.Turbidity,
		Date:           raw.Date,
		Time:           raw.Time,
		Status:         raw.Status,
	}

	if r.Time == "" {
		r.Time = DefaultTime
	}
	if r.Status == "" {
		r.Status = DefaultStatus
	}

	// A record without a date has no defined position on the time axis.
	// It keeps sort key 0 (epoch) so it orders as oldest, and an empty
	// canonical timestamp so it is never flagged as recent.
	if raw.Date != "" {
		if ts, err := time.Parse(TimestampLayout, raw.Date+" "+r.Time); err == nil {
			r.Timestamp = ts.Format(TimestampLayout)
			r.SortKey = ts.UnixMilli()
		}
	}

	r.PHValue = parseMeasurement(raw.PHValue)
	r.Temperature = parseMeasurement(raw.Temperature)
	r.Turbidity = parseMeasurement(raw.Turbidity)

	return r
}

// parseMeasurement coerces a measurement that may arrive as a quoted string.
// Values that fail to parse become NaN; aggregates exclude them but the raw
// string form is kept for display.
func parseMeasurement(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// IsNewAt reports whether the reading's timestamp falls within threshold of
// now. Records without a parseable timestamp are never new. This is a
// presentation rule, recomputed per render.
func (r Reading) IsNewAt(now time.Time, threshold time.Duration) bool {
	if r.Timestamp == "" {
		return false
	}
	ts, err := time.ParseInLocation(TimestampLayout, r.Timestamp, now.Location())
	if err != nil {
		return false
	}
	return ts.After(now.Add(-threshold))
}

// Locations returns the distinct location labels in first-seen order,
// matching what the filter dropdowns present.
func Locations(rs []Reading) []string {
	seen := make(map[string]struct{}, len(rs))
	var out []string
	for _, r := range rs {
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}
