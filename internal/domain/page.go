package domain

// PageParams contains offset pagination request parameters.
type PageParams struct {
	Page int // zero-based page index
	Size int // items per page (defaults to 20 with a maximum of 100)
}

// Validate checks and corrects pagination parameters.
func (p *PageParams) Validate() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// Offset returns the number of items to skip.
func (p PageParams) Offset() int {
	return p.Page * p.Size
}

// Page contains one page of data and pagination metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
}

// NewPage assembles a page envelope from items and a total count.
func NewPage[T any](items []T, params PageParams, total int64) *Page[T] {
	totalPages := total / int64(params.Size)
	if total%int64(params.Size) != 0 {
		totalPages++
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Page:       params.Page,
		Size:       params.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
