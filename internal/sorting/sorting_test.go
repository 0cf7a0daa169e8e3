package sorting_test

import (
	"testing"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/sorting"
)

func fixture() []reading.Reading {
	return reading.Normalize([]reading.RawRecord{
		{ID: 1, Location: "lake", PHValue: "7.2", Temperature: "22.5", Turbidity: "15.3", Date: "2025-03-08", Time: "12:30:00"},
		{ID: 2, Location: "river", PHValue: "6.8", Temperature: "24.0", Turbidity: "3.1", Date: "2025-03-09", Time: "13:00:00"},
		{ID: 3, Location: "well", PHValue: "abc", Temperature: "19.5", Turbidity: "0.8", Date: "2025-03-07", Time: "09:15:00"},
		{ID: 4, Location: "lake", PHValue: "7.2", Temperature: "26.3", Turbidity: "4.4", Date: "2025-03-08", Time: "12:30:00"},
	})
}

func ids(rs []reading.Reading) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func assertOrder(t *testing.T, got []reading.Reading, want ...int) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("Expected order %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, gotIDs)
		}
	}
}

func TestDefault_NewestFirst(t *testing.T) {
	got := sorting.Default(fixture())
	// IDs 1 and 4 share a timestamp; stability keeps 1 before 4.
	assertOrder(t, got, 2, 1, 4, 3)
}

func TestApply_StableOnEqualKeys(t *testing.T) {
	rs := fixture()

	asc := sorting.Apply(rs, sorting.FieldPHValue, sorting.Ascending)
	// NaN (id 3) sorts below every number; 1 and 4 tie on 7.2 and keep
	// their input order.
	assertOrder(t, asc, 3, 2, 1, 4)

	again := sorting.Apply(asc, sorting.FieldPHValue, sorting.Ascending)
	assertOrder(t, again, 3, 2, 1, 4)
}

func TestApply_Directions(t *testing.T) {
	rs := fixture()

	asc := sorting.Apply(rs, sorting.FieldTemperature, sorting.Ascending)
	assertOrder(t, asc, 3, 1, 2, 4)

	desc := sorting.Apply(rs, sorting.FieldTemperature, sorting.Descending)
	assertOrder(t, desc, 4, 2, 1, 3)
}

func TestApply_Location(t *testing.T) {
	got := sorting.Apply(fixture(), sorting.FieldLocation, sorting.Ascending)
	assertOrder(t, got, 1, 4, 2, 3)
}

func TestApply_ID(t *testing.T) {
	got := sorting.Apply(fixture(), sorting.FieldID, sorting.Descending)
	assertOrder(t, got, 4, 3, 2, 1)
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	rs := fixture()
	before := ids(rs)

	sorting.Apply(rs, sorting.FieldTurbidity, sorting.Descending)

	after := ids(rs)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Input slice was reordered: %v -> %v", before, after)
		}
	}
}
