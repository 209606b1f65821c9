package aggregate

// Page sizes of the review views.
const (
	PublicPageSize = 4
	AdminPageSize  = 5
)

// Pager is a fixed-size pagination window over an in-memory list. Page
// numbers are 1-based.
type Pager[T any] struct {
	size  int
	page  int
	items []T
}

func NewPager[T any](size int, items []T) *Pager[T] {
	if size <= 0 {
		size = PublicPageSize
	}
	return &Pager[T]{size: size, page: 1, items: items}
}

// SetItems replaces the list (e.g. after a filter change) and goes back to
// page 1.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.page = 1
}

func (p *Pager[T]) Page() int     { return p.page }
func (p *Pager[T]) PageSize() int { return p.size }
func (p *Pager[T]) Total() int    { return len(p.items) }

func (p *Pager[T]) TotalPages() int {
	return (len(p.items) + p.size - 1) / p.size
}

// GoTo moves to page n and reports whether it did. Pages outside
// [1, TotalPages] leave the window unchanged.
func (p *Pager[T]) GoTo(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.page = n
	return true
}

func (p *Pager[T]) Next() bool { return p.GoTo(p.page + 1) }
func (p *Pager[T]) Prev() bool { return p.GoTo(p.page - 1) }

// Items returns the current page.
func (p *Pager[T]) Items() []T {
	start := (p.page - 1) * p.size
	if start >= len(p.items) {
		return nil
	}
	end := min(start+p.size, len(p.items))
	return p.items[start:end]
}

// Window is a serializable page of a list.
type Window[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func (p *Pager[T]) Window() Window[T] {
	data := p.Items()
	if data == nil {
		data = []T{}
	}
	tp := p.TotalPages()
	return Window[T]{
		Data:       data,
		TotalCount: len(p.items),
		Page:       p.page,
		PerPage:    p.size,
		TotalPages: tp,
		HasNext:    p.page < tp,
		HasPrev:    p.page > 1,
	}
}

// Paginate is the one-shot form used by HTTP handlers: an out-of-range page
// request falls back to the nearest valid page.
func Paginate[T any](items []T, size, page int) Window[T] {
	p := NewPager(size, items)
	if !p.GoTo(page) && page > 1 {
		p.GoTo(p.TotalPages())
	}
	return p.Window()
}
