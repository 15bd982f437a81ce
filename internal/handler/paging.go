package handler

import "strconv"

// pageSizes is the fixed set of selectable page sizes; anything else
// falls back to the default.
var pageSizes = map[int]bool{5: true, 10: true, 20: true, 50: true}

const defaultPageSize = 10

// parsePaging reads page/perPage query values, clamping the page to at
// least 1 and snapping perPage to the allowed set. The dashboard
// resets to page 1 whenever a filter or the page size changes, so an
// out-of-range page only occurs from hand-edited URLs; those clamp
// rather than error.
func parsePaging(pageStr, perPageStr string) (page, perPage int) {
	page = 1
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		page = n
	}
	perPage = defaultPageSize
	if n, err := strconv.Atoi(perPageStr); err == nil && pageSizes[n] {
		perPage = n
	}
	return page, perPage
}

// slicePage returns the [start, end) bounds for the requested page
// over total filtered items, plus the effective page and page count.
// Pages beyond the last clamp to the last non-empty page (page 1 when
// there are no items).
func slicePage(total, page, perPage int) (start, end, effPage, totalPages int) {
	totalPages = (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start = (page - 1) * perPage
	end = start + perPage
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	return start, end, page, totalPages
}
