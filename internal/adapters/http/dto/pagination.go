package dto

// DefaultPageSize is the default number of items per page.
const DefaultPageSize = 10

// MaxPageSize is the maximum allowed items per page.
const MaxPageSize = 100

// PaginationRequest represents page-based pagination parameters.
type PaginationRequest struct {
	// Page is the 1-based page number. Values below 1 are treated as 1.
	Page int `form:"page"`

	// PageSize is the number of items per page (1-100, default 10).
	// Out-of-range values are clamped, never rejected.
	PageSize int `form:"page_size"`
}

// GetPage returns the page number with defaults applied.
func (p *PaginationRequest) GetPage() int {
	if p.Page < 1 {
		return 1
	}

	return p.Page
}

// GetPageSize returns the page size with defaults applied.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}

	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}

	return p.PageSize
}

// PaginatedResponse is a generic page of items.
type PaginatedResponse[T any] struct {
	// Items is the array of items for this page.
	Items []T `json:"items"`

	// Total is the number of items across all pages.
	Total int64 `json:"total"`

	// Page is the 1-based page number of this page.
	Page int `json:"page"`

	// PageSize is the requested page size.
	PageSize int `json:"pageSize"`

	// HasMore indicates whether there are more items after this page.
	HasMore bool `json:"hasMore"`
}

// NewPaginatedResponse creates a paginated response for one page of items.
func NewPaginatedResponse[T any](items []T, total int64, page, pageSize int) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}

	return &PaginatedResponse[T]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  int64(page)*int64(pageSize) < total,
	}
}

// EmptyPaginatedResponse returns an empty paginated response.
func EmptyPaginatedResponse[T any](page, pageSize int) *PaginatedResponse[T] {
	return &PaginatedResponse[T]{
		Items:    []T{},
		Page:     page,
		PageSize: pageSize,
	}
}
