package stats_test

import (
	"testing"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/stats"
)

func TestSummarize_ExcludesUnparseableFromAverages(t *testing.T) {
	rs := reading.Normalize([]reading.RawRecord{
		{ID: 1, Location: "lake", PHValue: "7.0", Temperature: "20", Turbidity: "2", Date: "2025-03-08"},
		{ID: 2, Location: "river", PHValue: "8.0", Temperature: "30", Turbidity: "4", Date: "2025-03-08"},
		{ID: 3, Location: "lake", PHValue: "abc", Temperature: "25", Turbidity: "3", Date: "2025-03-08"},
	})

	s := stats.Summarize(rs)

	if s.Count != 3 {
		t.Errorf("Expected count 3, got %d", s.Count)
	}
	if s.DistinctLocations != 2 {
		t.Errorf("Expected 2 distinct locations, got %d", s.DistinctLocations)
	}
	// "abc" contributes neither to the sum nor to the divisor.
	if s.AvgPHValue != 7.5 {
		t.Errorf("Expected avg pH 7.5, got %f", s.AvgPHValue)
	}
	if s.AvgTemperature != 25 {
		t.Errorf("Expected avg temperature 25, got %f", s.AvgTemperature)
	}
	if s.AvgTurbidity != 3 {
		t.Errorf("Expected avg turbidity 3, got %f", s.AvgTurbidity)
	}
}

func TestSummarize_ZeroFallback(t *testing.T) {
	rs := reading.Normalize([]reading.RawRecord{
		{ID: 1, Location: "lake", PHValue: "n/a", Temperature: "", Turbidity: "-", Date: "2025-03-08"},
	})

	s := stats.Summarize(rs)

	if s.AvgPHValue != 0 || s.AvgTemperature != 0 || s.AvgTurbidity != 0 {
		t.Errorf("Expected zero averages with no parseable values, got %+v", s)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := stats.Summarize(nil)
	if s.Count != 0 || s.DistinctLocations != 0 {
		t.Errorf("Expected empty summary, got %+v", s)
	}
}

func TestByLocation_ScoreCurve(t *testing.T) {
	rs := reading.Normalize([]reading.RawRecord{
		// Ideal water: pH 7, temp 25, turbidity 0.
		{ID: 1, Location: "spring", PHValue: "7.0", Temperature: "25", Turbidity: "0", Date: "2025-03-08"},
		// pH avg 7.5 -> 90, temp avg 25 -> 100, turbidity avg 3 -> 70.
		{ID: 2, Location: "lake", PHValue: "7.0", Temperature: "20", Turbidity: "2", Date: "2025-03-08"},
		{ID: 3, Location: "lake", PHValue: "8.0", Temperature: "30", Turbidity: "4", Date: "2025-03-08"},
	})

	insights := stats.ByLocation(rs)

	if len(insights) != 2 {
		t.Fatalf("Expected 2 insights, got %d", len(insights))
	}

	spring := insights[0]
	if spring.Location != "spring" {
		t.Fatalf("Expected best location first, got '%s'", spring.Location)
	}
	if spring.PHScore != 100 || spring.TemperatureScore != 100 || spring.TurbidityScore != 100 {
		t.Errorf("Expected perfect scores, got %+v", spring)
	}
	if spring.OverallScore != 100 {
		t.Errorf("Expected overall 100, got %d", spring.OverallScore)
	}

	lake := insights[1]
	if lake.Count != 2 {
		t.Errorf("Expected 2 lake readings, got %d", lake.Count)
	}
	if lake.PHScore != 90 {
		t.Errorf("Expected pH score 90, got %f", lake.PHScore)
	}
	if lake.TemperatureScore != 100 {
		t.Errorf("Expected temperature score 100, got %f", lake.TemperatureScore)
	}
	if lake.TurbidityScore != 70 {
		t.Errorf("Expected turbidity score 70, got %f", lake.TurbidityScore)
	}
	// round((90+100+70)/3) = round(86.67) = 87
	if lake.OverallScore != 87 {
		t.Errorf("Expected overall 87, got %d", lake.OverallScore)
	}
}

func TestByLocation_ScoreClampsAtZero(t *testing.T) {
	rs := reading.Normalize([]reading.RawRecord{
		{ID: 1, Location: "outfall", PHValue: "14", Temperature: "25", Turbidity: "20", Date: "2025-03-08"},
	})

	in := stats.ByLocation(rs)[0]

	if in.PHScore != 0 {
		t.Errorf("Expected pH score clamped to 0, got %f", in.PHScore)
	}
	if in.TurbidityScore != 0 {
		t.Errorf("Expected turbidity score clamped to 0, got %f", in.TurbidityScore)
	}
}

func TestByLocation_NoParseableValuesScoresZero(t *testing.T) {
	rs := reading.Normalize([]reading.RawRecord{
		{ID: 1, Location: "ghost", PHValue: "x", Temperature: "x", Turbidity: "x", Date: "2025-03-08"},
	})

	in := stats.ByLocation(rs)[0]

	// An empty accumulator averages 0, which would otherwise score a pH of
	// 0 as "very acidic"; the score must stay 0 instead.
	if in.PHScore != 0 || in.TemperatureScore != 0 || in.TurbidityScore != 0 {
		t.Errorf("Expected zero scores with no parseable values, got %+v", in)
	}
	if in.OverallScore != 0 {
		t.Errorf("Expected overall 0, got %d", in.OverallScore)
	}
}

func TestByLocation_OrderedBestFirst(t *testing.T) {
	rs := reading.Normalize([]reading.RawRecord{
		{ID: 1, Location: "bad", PHValue: "3", Temperature: "40", Turbidity: "12", Date: "2025-03-08"},
		{ID: 2, Location: "good", PHValue: "7", Temperature: "25", Turbidity: "0.5", Date: "2025-03-08"},
		{ID: 3, Location: "fair", PHValue: "7.5", Temperature: "22", Turbidity: "3", Date: "2025-03-08"},
	})

	insights := stats.ByLocation(rs)

	for i := 1; i < len(insights); i++ {
		if insights[i-1].OverallScore < insights[i].OverallScore {
			t.Fatalf("Insights not ordered best first: %s=%d before %s=%d",
				insights[i-1].Location, insights[i-1].OverallScore,
				insights[i].Location, insights[i].OverallScore)
		}
	}
	if insights[0].Location != "good" {
		t.Errorf("Expected 'good' first, got '%s'", insights[0].Location)
	}
}
