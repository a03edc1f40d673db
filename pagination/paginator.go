// Package pagination slices ordered feeds into fixed-size pages.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is used when a non-positive page size is configured.
const DefaultPageSize = 10

// Page is a bounded slice of a feed plus navigation metadata.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	Size        int  `json:"page_size"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// ParsePageNumber reads a page query value. Missing or non-numeric input yields 1;
// numeric input is returned as is and clamped later by Paginate.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// TotalPages returns ceil(total/size), never less than one.
func TotalPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Paginate returns page number of items, clamping number into [1, TotalPages].
// The returned Items slice is a copy and never nil.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	pages := TotalPages(len(items), size)
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	start := (number - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	window := make([]T, 0, end-start)
	window = append(window, items[start:end]...)

	return Page[T]{
		Items:       window,
		Number:      number,
		Size:        size,
		Total:       len(items),
		TotalPages:  pages,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}
