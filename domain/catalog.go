package domain

import "time"

// CatalogFilter is the decoded query-string filter for product listing.
// Zero values mean "not set".
type CatalogFilter struct {
	Search        string
	Category      string
	MinPrice      float64
	MaxPrice      float64
	MinRating     float64
	GreenOnly     bool
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Sort          string
	Page          int
	PageSize      int
}

// Pagination is the listing envelope metadata. TotalPages is
// ceil(Total/PageSize).
type Pagination struct {
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	PageSize        int   `json:"page_size"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

type ProductPage struct {
	Products   []ProductWithRating `json:"products"`
	Pagination Pagination          `json:"pagination"`
}
