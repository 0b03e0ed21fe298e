// Package paging converts page-number pagination into offset/limit windows
// and summarizes result sets. Inputs are assumed to be normalized by the
// caller: page and limit are both at least 1.
package paging

import "math"

// Window is the offset/limit pair a store applies to a query.
type Window struct {
	Offset uint
	Limit  uint
}

// Summary describes where a page sits in the full filtered result set.
type Summary struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// Fits reports whether the offset of page is representable, i.e.
// (page-1)*limit does not overflow an int.
func Fits(page, limit int) bool {
	return page <= 1 || limit <= 0 || page-1 <= math.MaxInt/limit
}

// Offset returns the number of rows to skip for the given page. Pages past
// the representable range saturate at math.MaxInt, which selects no rows.
func Offset(page, limit int) int {
	if !Fits(page, limit) {
		return math.MaxInt
	}

	return (page - 1) * limit
}

// TotalPages returns ceil(total/limit). An empty result set has zero pages.
func TotalPages(total int64, limit int) int {
	l := int64(limit)

	return int((total + l - 1) / l)
}

// For returns the store window for page and limit.
func For(page, limit int) Window {
	return Window{
		Offset: uint(Offset(page, limit)), //nolint: gosec
		Limit:  uint(limit),               //nolint: gosec
	}
}

// Summarize builds the summary of a page given the total row count.
func Summarize(total int64, page, limit int) Summary {
	return Summary{
		Total:      total,
		Page:       page,
		TotalPages: TotalPages(total, limit),
	}
}
