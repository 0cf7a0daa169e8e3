// Package paging slices an ordered reading collection into fixed-size pages
// and generates the page-number window shown by pagination controls.
package paging

import "github.com/aquaview/water-quality-dashboard/internal/reading"

// Ellipsis marks an elided range in a page window.
const Ellipsis = -1

// Meta describes the slice returned for a page. FirstIndex and LastIndex are
// 1-based positions within the full collection ("Showing 11 to 20 of 43");
// both are zero when the collection is empty.
type Meta struct {
	CurrentPage int
	TotalPages  int
	FirstIndex  int
	LastIndex   int
	TotalCount  int
}

// Slice returns the rows for the requested page plus page metadata.
// Out-of-range requests clamp: page < 1 becomes 1, page > TotalPages becomes
// the last page. An empty collection yields one empty page rather than an
// error.
func Slice(rs []reading.Reading, page, pageSize int) ([]reading.Reading, Meta) {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(rs)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	meta := Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}
	if total == 0 {
		return nil, meta
	}

	first := (page - 1) * pageSize
	last := first + pageSize
	if last > total {
		last = total
	}
	meta.FirstIndex = first + 1
	meta.LastIndex = last

	out := make([]reading.Reading, last-first)
	copy(out, rs[first:last])
	return out, meta
}

// Window returns the page numbers to render as buttons: a run of up to
// maxVisible pages centered on current, clamped at both ends, with the first
// and last page always present and Ellipsis markers standing in for elided
// ranges.
func Window(current, total, maxVisible int) []int {
	if total < 1 {
		total = 1
	}
	if maxVisible < 1 {
		maxVisible = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - maxVisible/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisible - 1
	if end > total {
		end = total
	}
	// Re-widen toward the front when clamped at the tail.
	if end-start+1 < maxVisible {
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	var out []int
	if start > 1 {
		out = append(out, 1)
		if start > 2 {
			out = append(out, Ellipsis)
		}
	}
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	if end < total {
		if end < total-1 {
			out = append(out, Ellipsis)
		}
		out = append(out, total)
	}
	return out
}
