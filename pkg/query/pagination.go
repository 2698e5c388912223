package query

// PageState is offset pagination for admin tables. Index is zero-based.
type PageState struct {
	Index int
	Size  int
}

const DefaultPageSize = 10

func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Clamp keeps Index inside [0, last page] for total items.
func (p PageState) Clamp(total int) PageState {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	last := PageCount(total, p.Size) - 1
	if last < 0 {
		last = 0
	}
	if p.Index > last {
		p.Index = last
	}
	if p.Index < 0 {
		p.Index = 0
	}
	return p
}

// Paginate returns the slice of items on page p.
func Paginate[T any](items []T, p PageState) []T {
	p = p.Clamp(len(items))
	start := p.Index * p.Size
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
