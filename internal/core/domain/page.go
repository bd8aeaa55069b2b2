package domain

import "context"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a normalized page/size pair. Build it with NewPageRequest so
// the bounds are always applied.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps page to >= 1 and pageSize to (0, MaxPageSize],
// substituting DefaultPageSize for non-positive sizes.
func NewPageRequest(page, pageSize int) PageRequest {
	if page <= 0 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset is the number of records that precede the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Page is one slice of an ordered collection together with the size of the
// whole collection.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int64
}

// TotalPages is ceil(TotalCount / PageSize). It never looks at len(Items).
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((p.TotalCount + size - 1) / size)
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages()
}

// Pageable is a collection that can be counted and sliced. Implementations
// must return items in a stable order (by identifier) across calls.
type Pageable[T any] interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]T, error)
}

// Paginate counts the whole source and fetches the slice for req. A page past
// the end yields an empty Items slice and the real TotalCount.
func Paginate[T any](ctx context.Context, source Pageable[T], req PageRequest) (Page[T], error) {
	req = NewPageRequest(req.Page, req.PageSize)

	total, err := source.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{
		Items:      []T{},
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalCount: total,
	}
	// Compare page numbers rather than offsets: (Page-1)*PageSize overflows for
	// very large pages.
	if int64(req.Page) > int64(page.TotalPages()) {
		return page, nil
	}

	items, err := source.List(ctx, req.Offset(), req.PageSize)
	if err != nil {
		return Page[T]{}, err
	}
	if items != nil {
		page.Items = items
	}
	return page, nil
}

// MapPage converts every item of p with fn, keeping the page metadata.
func MapPage[T, V any](p Page[T], fn func(T) V) Page[V] {
	out := make([]V, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[V]{
		Items:      out,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
	}
}
