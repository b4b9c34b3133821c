package posts

import "strconv"

const defaultPerPage = 5

// Pagination describes one page of a listing for the templates.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// parsePage falls back to the first page when the query value is absent,
// not a number, or below 1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePerPage reads a caller-supplied page size, clamped to max when max
// is positive. The feed and search pass max 5; tag listings pass 0 and so
// accept any size the caller asks for.
func parsePerPage(raw string, max int) int {
	perPage, err := strconv.Atoi(raw)
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if max > 0 && perPage > max {
		perPage = max
	}
	return perPage
}
