package leads

import "strconv"

// Pagination defaults and bounds. Limit is clamped to [1, MaxLimit] no matter
// what the client asks for.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is the resolved pagination window for a listing request.
type Page struct {
	Page  int
	Limit int
}

// NewPage resolves the raw page/limit parameters: page defaults to 1
// (nonpositive or unparsable collapse to 1), limit defaults to 20 and is
// clamped to [1, 100].
func NewPage(pageRaw, limitRaw string) Page {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Skip is the row offset of this page.
func (p Page) Skip() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit), 0 when total is 0.
func (p Page) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
