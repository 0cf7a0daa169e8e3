// Package sorting orders reading collections with type-aware comparators.
package sorting

import (
	"math"
	"sort"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Field identifies a sortable column.
type Field string

const (
	FieldTimestamp   Field = "timestamp"
	FieldLocation    Field = "location"
	FieldPHValue     Field = "ph_value"
	FieldTemperature Field = "temperature"
	FieldTurbidity   Field = "turbidity"
	FieldID          Field = "id"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// locations sort the way a user expects labels to sort, not by raw bytes.
var locationCollator = collate.New(language.English)

// Apply returns a new slice ordered by field and direction. The underlying
// sort is stable so equal-key rows preserve their relative input order,
// which keeps pagination reproducible. The input is not modified.
func Apply(rs []reading.Reading, field Field, dir Direction) []reading.Reading {
	out := make([]reading.Reading, len(rs))
	copy(out, rs)

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], field)
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Default applies the baseline table ordering: newest first.
func Default(rs []reading.Reading) []reading.Reading {
	return Apply(rs, FieldTimestamp, Descending)
}

func compare(a, b reading.Reading, field Field) int {
	switch field {
	case FieldLocation:
		return locationCollator.CompareString(a.Location, b.Location)
	case FieldPHValue:
		return compareFloat(a.PHValue, b.PHValue)
	case FieldTemperature:
		return compareFloat(a.Temperature, b.Temperature)
	case FieldTurbidity:
		return compareFloat(a.Turbidity, b.Turbidity)
	case FieldID:
		return a.ID - b.ID
	default: // FieldTimestamp
		switch {
		case a.SortKey < b.SortKey:
			return -1
		case a.SortKey > b.SortKey:
			return 1
		}
		return 0
	}
}

// compareFloat orders NaN below every number so unparseable measurements
// cluster at one end instead of scattering unpredictably.
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
