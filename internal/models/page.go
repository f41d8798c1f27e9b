package models

// DefaultPerPage is used when a caller does not ask for a page size.
const DefaultPerPage = 10

// PageMeta is the pagination part of a list envelope.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// Page is the paginated envelope returned by list endpoints.
type Page[T any] struct {
	Data []T `json:"data"`
	PageMeta
}

// NewPageMeta computes the envelope fields for a page of size n out of total rows.
func NewPageMeta(page, perPage int, total int64, n int) PageMeta {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	meta := PageMeta{CurrentPage: page, LastPage: last, PerPage: perPage, Total: total}
	if n > 0 {
		meta.From = (page-1)*perPage + 1
		meta.To = meta.From + n - 1
	}
	return meta
}
