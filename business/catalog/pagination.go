package catalog

import "linkFlame/domain"

// NewPagination computes the listing envelope for a total row count.
// TotalPages is ceil(total/pageSize); the has-next/has-previous flags are
// derived from the requested page against that bound.
func NewPagination(total int64, page, pageSize int) domain.Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return domain.Pagination{
		Total:           total,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1 && total > 0,
	}
}
