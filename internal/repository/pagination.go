package repository

// Pagination holds standard offset/limit paging parameters.
type Pagination struct {
	Page     int // 1-based page number
	PageSize int // number of items per page
}

// Offset returns the number of records to skip (0-based).
func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the maximum number of records to return.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return 10 // a sensible default
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// Number returns the 1-based page number, defaulting to the first page.
func (p Pagination) Number() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
