package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aquaview/water-quality-dashboard/internal/paging"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/view"
)

// renderAdmin prints the admin dashboard: stat cards, per-location quality
// insights, and the current page of the data table.
func renderAdmin(w io.Writer, admin *view.Admin) error {
	summary, lastUpdated := admin.Summary()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Admin Dashboard ===")
	if msg := admin.Error(); msg != "" {
		fmt.Fprintf(w, "ERROR: %s\n", msg)
	}
	if msg := admin.Success(); msg != "" {
		fmt.Fprintf(w, "OK: %s\n", msg)
	}

	fmt.Fprintf(w, "Records: %d  Locations: %d  Avg pH: %.2f  Avg Temp: %.1f°C  Avg Turbidity: %.2f NTU  Updated: %s\n",
		summary.Count, summary.DistinctLocations,
		summary.AvgPHValue, summary.AvgTemperature, summary.AvgTurbidity,
		lastUpdated.Format("15:04:05"))

	if insights := admin.Insights(); len(insights) > 0 {
		fmt.Fprintln(w, "--- Water Quality Insights ---")
		for _, in := range insights {
			fmt.Fprintf(w, "%-20s %3d%%  (pH %.2f, temp %.1f°C, turbidity %.2f NTU, %d records)\n",
				in.Location, in.OverallScore,
				in.AvgPHValue, in.AvgTemperature, in.AvgTurbidity, in.Count)
		}
	}

	rows, meta := admin.Page()
	if err := renderRows(w, rows, admin.IsNew); err != nil {
		return err
	}

	fmt.Fprintf(w, "Showing %d to %d of %d records  %s\n",
		meta.FirstIndex, meta.LastIndex, meta.TotalCount,
		formatWindow(admin.PageWindow(), meta.CurrentPage))
	return nil
}

// renderTable prints the read-only sensor table.
func renderTable(w io.Writer, table *view.Table) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Sensor Data Table ===")
	if msg := table.Error(); msg != "" {
		fmt.Fprintf(w, "ERROR: %s\n", msg)
	}

	rows := table.Rows()
	if err := renderRows(w, rows, table.IsNew); err != nil {
		return err
	}

	field, dir := table.Sort()
	fmt.Fprintf(w, "%d records found • sorted by %s (%s)\n", len(rows), field, dir)
	return nil
}

// renderHome prints the landing summary over the recent readings.
func renderHome(w io.Writer, home *view.Home) error {
	summary := home.Summary()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Water Quality Monitor ===")
	if msg := home.Error(); msg != "" {
		fmt.Fprintf(w, "ERROR: %s\n", msg)
	}
	fmt.Fprintf(w, "Total readings: %d  Avg pH: %.2f  Avg Temp: %.1f°C  Avg Turbidity: %.2f NTU\n",
		summary.Count, summary.AvgPHValue, summary.AvgTemperature, summary.AvgTurbidity)
	return renderRows(w, home.Recent(), home.IsNew)
}

func renderRows(w io.Writer, rows []reading.Reading, isNew func(reading.Reading) bool) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data available")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLocation\tpH\tTemp\tTurbidity\tTimestamp\t")
	for _, r := range rows {
		marker := ""
		if isNew(r) {
			marker = " [NEW]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s%s\t\n",
			r.ID, r.Location,
			r.RawPHValue, r.RawTemperature, r.RawTurbidity,
			r.Timestamp, marker)
	}
	return tw.Flush()
}

// formatWindow renders the page buttons as e.g. "1 ... 4 [5] 6 ... 12".
func formatWindow(window []int, current int) string {
	parts := make([]string, 0, len(window))
	for _, p := range window {
		switch {
		case p == paging.Ellipsis:
			parts = append(parts, "...")
		case p == current:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	return strings.Join(parts, " ")
}
