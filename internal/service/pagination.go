package service

import "math"

// DefaultMaxPageSize applies when a service is built without a limit
const DefaultMaxPageSize = 100

// validatePage checks a 1-based page number and a page size.
// A size of zero is valid and means an empty page. The page's offset
// must fit in an int.
func validatePage(pageNumber, size, maxPageSize int) error {
	if pageNumber < 1 {
		return ErrInvalidPageNumber
	}
	if size < 0 {
		return ErrInvalidPageSize
	}
	if size > maxPageSize {
		return ErrPageSizeTooLarge
	}
	if size > 0 && pageNumber-1 > math.MaxInt/size {
		return ErrInvalidPageNumber
	}
	return nil
}

func maxPageSizeOrDefault(n int) int {
	if n <= 0 {
		return DefaultMaxPageSize
	}
	return n
}
