// Package paging implements page arithmetic over an ordered list.
// Pages are 1-based.
package paging

// DefaultPerPage is the page size used when none is configured
const DefaultPerPage = 4

// Pager computes page bounds for a fixed page size
type Pager struct {
	PerPage int
}

// New returns a pager; a non-positive size falls back to DefaultPerPage
func New(perPage int) Pager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Pager{PerPage: perPage}
}

func (p Pager) size() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

// Pages returns the number of pages needed for total items
func (p Pager) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	n := p.size()
	return (total + n - 1) / n
}

// Bounds returns the half-open slice range [start, end) for page.
// A page past the end yields an empty range at total.
func (p Pager) Bounds(page, total int) (start, end int) {
	if page < 1 {
		page = 1
	}
	n := p.size()
	start = (page - 1) * n
	if start > total {
		start = total
	}
	end = start + n
	if end > total {
		end = total
	}
	return start, end
}

// Clamp recomputes the current page after the data length changed.
// When the page's first index falls past the data, it moves to the last
// page. The result is never below 1.
func (p Pager) Clamp(page, total int) int {
	if page < 1 {
		return 1
	}
	start := (page - 1) * p.size()
	if start >= total {
		last := p.Pages(total)
		if last < 1 {
			return 1
		}
		return last
	}
	return page
}

// Next returns the following page, staying on the last one
func (p Pager) Next(page, total int) int {
	return p.Goto(page+1, total)
}

// Prev returns the previous page, staying on page 1
func (p Pager) Prev(page int) int {
	if page <= 1 {
		return 1
	}
	return page - 1
}

// Goto returns page limited to [1, Pages(total)]
func (p Pager) Goto(page, total int) int {
	if page < 1 {
		return 1
	}
	if last := p.Pages(total); page > last {
		if last < 1 {
			return 1
		}
		return last
	}
	return page
}

// Offset returns the absolute index of the item at position i on page
func (p Pager) Offset(page, i int) int {
	if page < 1 {
		page = 1
	}
	return (page-1)*p.size() + i
}

// Slice returns the items on page
func Slice[T any](items []T, page, perPage int) []T {
	start, end := Pager{PerPage: perPage}.Bounds(page, len(items))
	return items[start:end]
}
