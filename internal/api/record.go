package api

import (
	"bytes"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// looseString accepts a JSON number, string, or null and keeps the raw text.
// The backend is not consistent about quoting measurement values, so the
// wire type stays a string and the normalizer does the parsing.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = looseString(b)
	return nil
}

// rawRecord is the wire shape of a sensor record.
type rawRecord struct {
	ID          int         `json:"id"`
	Location    string      `json:"location"`
	PHValue     looseString `json:"ph_value"`
	Temperature looseString `json:"temperature"`
	Turbidity   looseString `json:"turbidity"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Status      string      `json:"status"`
}

func toRawRecords(records []rawRecord) []reading.RawRecord {
	out := make([]reading.RawRecord, 0, len(records))
	for _, r := range records {
		out = append(out, reading.RawRecord{
			ID:          r.ID,
			Location:    r.Location,
			PHValue:     string(r.PHValue),
			Temperature: string(r.Temperature),
			Turbidity:   string(r.Turbidity),
			Date:        r.Date,
			Time:        r.Time,
			Status:      r.Status,
		})
	}
	return out
}
