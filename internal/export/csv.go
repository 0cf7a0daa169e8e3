// Package export renders a reading collection as downloadable artifacts.
// Exports operate on the displayed (filtered and sorted) rows, not the full
// collection.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// Header is the exported column set, in order.
var Header = []string{"ID", "Location", "pH Value", "Temperature", "Turbidity", "Date", "Time"}

// CSV renders the readings as comma-separated values. Fields containing
// commas (location names, typically) are quoted, so re-parsing recovers the
// original rows.
func CSV(rs []reading.Reading) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rs {
		if err := w.Write(row(r)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVFilename returns the conventional download name for an export taken at
// the given time.
func CSVFilename(t time.Time) string {
	return "water_quality_data_" + t.Format("2006-01-02_15-04-05") + ".csv"
}

// row uses the raw string forms so unparseable measurements export exactly
// as they were received.
func row(r reading.Reading) []string {
	return []string{
		fmt.Sprintf("%d", r.ID),
		r.Location,
		r.RawPHValue,
		r.RawTemperature,
		r.RawTurbidity,
		r.Date,
		r.Time,
	}
}
