package store

// Pagination defaults, matching the page/size conventions of the
// pagination envelope exposed by the API layer.
const (
	DefaultPage = 1
	DefaultSize = 50
	MaxSize     = 100
)

// PageParams selects one page of a listing. Page is 1-based.
type PageParams struct {
	Page int
	Size int
}

// DefaultPageParams returns the first page with the default size.
func DefaultPageParams() PageParams {
	return PageParams{Page: DefaultPage, Size: DefaultSize}
}

// Normalize clamps the parameters into their valid ranges so store
// implementations can use them directly in LIMIT/OFFSET clauses.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the row offset of the page's first item.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// TaskFilter narrows a task listing. Zero-valued fields are ignored;
// when both are set the filters combine conjunctively.
type TaskFilter struct {
	// Title selects tasks whose title contains this substring,
	// case-insensitively.
	Title string

	// Status selects tasks whose status matches exactly.
	Status string
}

// IsZero reports whether no filter is set.
func (f TaskFilter) IsZero() bool {
	return f.Title == "" && f.Status == ""
}
