// Package stats computes summary statistics and per-location water quality
// scores over a reading collection. Everything here is pure and recomputed
// whenever the underlying collection changes; collections are small enough
// that caching would buy nothing.
package stats

import (
	"math"
	"sort"

	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// Summary holds the headline numbers shown on the stat cards.
type Summary struct {
	Count             int
	DistinctLocations int
	AvgPHValue        float64
	AvgTemperature    float64
	AvgTurbidity      float64
}

// LocationInsight holds per-location aggregates and derived quality scores.
type LocationInsight struct {
	Location       string
	Count          int
	AvgPHValue     float64
	AvgTemperature float64
	AvgTurbidity   float64

	// 0-100 per-metric scores and their rounded unweighted mean.
	PHScore          float64
	TemperatureScore float64
	TurbidityScore   float64
	OverallScore     int
}

// Summarize computes the headline aggregates. Unparseable (NaN) measurements
// are excluded from the averages; a field with no parseable values reports
// an average of zero, a display fallback rather than an error.
func Summarize(rs []reading.Reading) Summary {
	distinct := make(map[string]struct{}, len(rs))
	var ph, temp, turb accumulator
	for _, r := range rs {
		distinct[r.Location] = struct{}{}
		ph.add(r.PHValue)
		temp.add(r.Temperature)
		turb.add(r.Turbidity)
	}
	return Summary{
		Count:             len(rs),
		DistinctLocations: len(distinct),
		AvgPHValue:        ph.average(),
		AvgTemperature:    temp.average(),
		AvgTurbidity:      turb.average(),
	}
}

// ByLocation groups readings by location and scores each group. The result
// is ordered best water quality first; that ordering is part of the
// contract, not a side effect.
func ByLocation(rs []reading.Reading) []LocationInsight {
	groups := make(map[string]*group)
	var order []string
	for _, r := range rs {
		g, ok := groups[r.Location]
		if !ok {
			g = &group{}
			groups[r.Location] = g
			order = append(order, r.Location)
		}
		g.count++
		g.ph.add(r.PHValue)
		g.temp.add(r.Temperature)
		g.turb.add(r.Turbidity)
	}

	out := make([]LocationInsight, 0, len(order))
	for _, loc := range order {
		g := groups[loc]
		in := LocationInsight{
			Location:       loc,
			Count:          g.count,
			AvgPHValue:     g.ph.average(),
			AvgTemperature: g.temp.average(),
			AvgTurbidity:   g.turb.average(),
		}
		if g.ph.n > 0 {
			in.PHScore = clampScore(100 - math.Abs(in.AvgPHValue-7.0)*20)
		}
		if g.temp.n > 0 {
			in.TemperatureScore = clampScore(100 - math.Abs(in.AvgTemperature-25.0)*4)
		}
		if g.turb.n > 0 {
			in.TurbidityScore = clampScore(100 - in.AvgTurbidity*10)
		}
		in.OverallScore = int(math.Round((in.PHScore + in.TemperatureScore + in.TurbidityScore) / 3))
		out = append(out, in)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	return out
}

type group struct {
	count          int
	ph, temp, turb accumulator
}

// accumulator sums parseable values only.
type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.sum += v
	a.n++
}

func (a *accumulator) average() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

func clampScore(s float64) float64 {
	return math.Max(0, s)
}
