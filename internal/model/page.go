package model

// Page is one slice of a larger ordered result set.
// Number is 1-based; Size is the requested page length.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
}

// EmptyPage returns a page with no items
func EmptyPage[T any](number, size, total int) *Page[T] {
	return &Page[T]{Items: []T{}, Number: number, Size: size, TotalItems: total}
}

// Offset is the 0-based position of the first item on page number of the given size
func Offset(number, size int) int {
	if number < 1 {
		return 0
	}
	return (number - 1) * size
}

// TotalPages returns how many pages of Size cover TotalItems
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalItems + p.Size - 1) / p.Size
}

// HasMore reports whether items exist past this page
func (p *Page[T]) HasMore() bool {
	return Offset(p.Number, p.Size)+len(p.Items) < p.TotalItems && p.Size > 0
}
