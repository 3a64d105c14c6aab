package syncro

import (
	"context"
	"iter"
)

// meta mirrors the pagination block of a listing response. Pointers
// distinguish absent fields from zero values.
type meta struct {
	Page         *int `json:"page"`
	TotalPages   *int `json:"total_pages"`
	TotalEntries *int `json:"total_entries"`
	PerPage      *int `json:"per_page"`
}

// pageInfo is the validated form of meta.
type pageInfo struct {
	Page       int
	TotalPages int
}

func (m meta) resolve() (pageInfo, error) {
	if m.Page == nil {
		return pageInfo{}, malformed("missing \"meta.page\"")
	}
	if m.TotalPages == nil {
		return pageInfo{}, malformed("missing \"meta.total_pages\"")
	}
	return pageInfo{Page: *m.Page, TotalPages: *m.TotalPages}, nil
}

// last reports whether the walk ends after the page that was requested as
// number requested. Both the reported and the requested page are compared
// with the total.
func (pi pageInfo) last(requested, items int) bool {
	return items == 0 || pi.Page >= pi.TotalPages || requested >= pi.TotalPages
}

type fetchFunc[T any] func(ctx context.Context, page int) ([]T, pageInfo, error)

// Pager walks a paginated listing one item at a time. Pages are requested
// lazily and strictly in order, starting at page 1. A Pager is single-use:
// once Next returns false it keeps returning false.
//
//	p := client.Contacts("")
//	for p.Next(ctx) {
//		use(p.Item())
//	}
//	if err := p.Err(); err != nil { ... }
type Pager[T any] struct {
	fetch fetchFunc[T]
	keep  func(context.Context, T) bool

	next    int // page to request next
	fetched int // pages fetched so far
	buf     []T
	cur     T
	done    bool
	err     error
}

func newPager[T any](fetch fetchFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, next: 1}
}

// Next advances to the next item, fetching the next page when the current
// one is exhausted. It returns false when the listing is finished or an error
// occurred; check Err to tell the two apart.
func (p *Pager[T]) Next(ctx context.Context) bool {
	for {
		if p.err != nil {
			return false
		}
		for len(p.buf) > 0 {
			item := p.buf[0]
			p.buf = p.buf[1:]
			if p.keep != nil && !p.keep(ctx, item) {
				continue
			}
			p.cur = item
			return true
		}
		if p.done {
			var zero T
			p.cur = zero
			return false
		}

		requested := p.next
		items, info, err := p.fetch(ctx, requested)
		if err != nil {
			p.err = err
			p.done = true
			p.buf = nil
			var zero T
			p.cur = zero
			return false
		}
		p.fetched++
		p.next++
		p.buf = items
		p.done = info.last(requested, len(items))
	}
}

// Item returns the item Next advanced to.
func (p *Pager[T]) Item() T {
	return p.cur
}

// Err returns the error that stopped the pager, if any.
func (p *Pager[T]) Err() error {
	return p.err
}

// Pages returns how many pages have been fetched successfully.
func (p *Pager[T]) Pages() int {
	return p.fetched
}

// All adapts the pager to a range-over-func sequence. A failure is yielded
// once as the final element with a zero item.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for p.Next(ctx) {
			if !yield(p.Item(), nil) {
				return
			}
		}
		if err := p.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}
