package model

// PaginationMetaDTO describes one page of a listing.
type PaginationMetaDTO struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PaginatedResponse wraps a page of items with its metadata.
type PaginatedResponse[T any] struct {
	Data       []T               `json:"data"`
	Pagination PaginationMetaDTO `json:"pagination"`
}

// NewPaginationMeta computes the page count for total items.
func NewPaginationMeta(page, pageSize, total int) PaginationMetaDTO {
	pages := 0
	if pageSize > 0 {
		pages = total / pageSize
		if total%pageSize > 0 {
			pages++
		}
	}
	return PaginationMetaDTO{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
