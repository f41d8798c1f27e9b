// Package pagination computes the page buttons shown under a list.
package pagination

import "tokoadmin/internal/models"

// Context is the number of pages shown on each side of the current one.
const Context = 2

// Control describes the pager for one list page.
type Control struct {
	Current      int
	Last         int
	Pages        []int
	Prev         int
	Next         int
	PrevDisabled bool
	NextDisabled bool
}

// Window builds the pager for meta. The window is clamped to [1, last].
func Window(meta models.PageMeta) Control {
	last := meta.LastPage
	if last < 1 {
		last = 1
	}
	cur := meta.CurrentPage
	if cur < 1 {
		cur = 1
	}
	if cur > last {
		cur = last
	}

	lo, hi := cur-Context, cur+Context
	if lo < 1 {
		lo = 1
	}
	if hi > last {
		hi = last
	}
	pages := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}

	return Control{
		Current:      cur,
		Last:         last,
		Pages:        pages,
		Prev:         cur - 1,
		Next:         cur + 1,
		PrevDisabled: cur <= 1,
		NextDisabled: cur >= last,
	}
}

// Go calls onChange with page when it is a valid target other than the
// current page, and reports whether it did.
func (c Control) Go(page int, onChange func(int)) bool {
	if page < 1 || page > c.Last || page == c.Current {
		return false
	}
	onChange(page)
	return true
}
