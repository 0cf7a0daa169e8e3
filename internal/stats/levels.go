package stats

import "math"

// Level classifies a single measurement against the dashboard's display
// thresholds.
type Level string

const (
	LevelUnknown Level = "unknown"

	PHAcidic   Level = "acidic"
	PHNormal   Level = "normal"
	PHAlkaline Level = "alkaline"

	TemperatureCold   Level = "cold"
	TemperatureNormal Level = "normal"
	TemperatureHot    Level = "hot"

	TurbidityGood Level = "good"
	TurbidityFair Level = "fair"
	TurbidityPoor Level = "poor"
)

// PHLevel classifies a pH measurement. 6.5-8.5 is the acceptable band.
func PHLevel(v float64) Level {
	switch {
	case math.IsNaN(v):
		return LevelUnknown
	case v < 6.5:
		return PHAcidic
	case v > 8.5:
		return PHAlkaline
	}
	return PHNormal
}

// TemperatureLevel classifies a temperature measurement in °C.
func TemperatureLevel(v float64) Level {
	switch {
	case math.IsNaN(v):
		return LevelUnknown
	case v > 30:
		return TemperatureHot
	case v < 10:
		return TemperatureCold
	}
	return TemperatureNormal
}

// TurbidityLevel classifies a turbidity measurement in NTU; lower is better.
func TurbidityLevel(v float64) Level {
	switch {
	case math.IsNaN(v):
		return LevelUnknown
	case v > 5:
		return TurbidityPoor
	case v < 1:
		return TurbidityGood
	}
	return TurbidityFair
}
