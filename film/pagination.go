package film

import "bechdel/errs"

const MaxPage = 10_000_000

var ErrInvalidPagination = errs.Errorf(errs.EINVALID, "film: invalid pagination")

// Pagination selects a window of a result set. Page is 1-based; zero values
// mean "first page" and "everything in one page".
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Validate() error {
	if p.Page < 0 || p.Page > MaxPage || p.PageSize < 0 {
		return ErrInvalidPagination
	}
	return nil
}

// window returns a copy of films[(page-1)*size : page*size], clipped to the
// slice bounds. Pages past the end yield an empty, non-nil slice.
func (p Pagination) window(films []Film) []Film {
	page, size := p.Page, p.PageSize
	if page == 0 {
		page = 1
	}
	// A page never holds more than every film; clipping keeps the offset
	// arithmetic below from overflowing.
	if size == 0 || size > len(films) {
		size = len(films)
	}
	if size == 0 {
		return []Film{}
	}

	start := (page - 1) * size
	if start >= len(films) {
		return []Film{}
	}
	end := min(start+size, len(films))

	out := make([]Film, end-start)
	copy(out, films[start:end])
	return out
}
