// Package validate checks create/update form input before any network call
// is made. Failures come back as per-field messages.
package validate

import (
	"strconv"
	"time"

	"github.com/aquaview/water-quality-dashboard/internal/api"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
)

// Form is the raw user input for a create or update action. Everything is a
// string because it comes straight from input fields.
type Form struct {
	Location    string
	PHValue     string
	Temperature string
	Turbidity   string
	Date        string
	Time        string
	Status      string
}

// Check validates the form. The returned map is keyed by field name and is
// empty when the form is valid.
func Check(f Form) map[string]string {
	errs := make(map[string]string)

	if f.Location == "" {
		errs["location"] = "Location is required"
	}

	checkMeasurement(errs, "ph_value", f.PHValue, "pH value")
	checkMeasurement(errs, "temperature", f.Temperature, "Temperature")
	checkMeasurement(errs, "turbidity", f.Turbidity, "Turbidity")

	if _, ok := errs["ph_value"]; !ok {
		if v, _ := strconv.ParseFloat(f.PHValue, 64); v < 0 || v > 14 {
			errs["ph_value"] = "pH value must be between 0 and 14"
		}
	}
	if _, ok := errs["turbidity"]; !ok {
		if v, _ := strconv.ParseFloat(f.Turbidity, 64); v < 0 {
			errs["turbidity"] = "Turbidity cannot be negative"
		}
	}

	return errs
}

func checkMeasurement(errs map[string]string, key, value, label string) {
	if value == "" {
		errs[key] = label + " is required"
		return
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		errs[key] = label + " must be a number"
	}
}

// ToPayload converts a validated form into the wire payload, defaulting date
// and time to now when left blank. Call Check first; ToPayload assumes the
// numeric fields parse.
func ToPayload(f Form, now time.Time) api.ReadingPayload {
	date := f.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	t := f.Time
	if t == "" {
		t = now.Format("15:04:05")
	}
	status := f.Status
	if status == "" {
		status = reading.DefaultStatus
	}

	ph, _ := strconv.ParseFloat(f.PHValue, 64)
	temp, _ := strconv.ParseFloat(f.Temperature, 64)
	turb, _ := strconv.ParseFloat(f.Turbidity, 64)

	return api.ReadingPayload{
		Location:    f.Location,
		PHValue:     ph,
		Temperature: temp,
		Turbidity:   turb,
		Date:        date,
		Time:        t,
		Status:      status,
	}
}
