package searchresult

// PageInfo contains metadata about a paginated result set.
// It uses function fields to enable lazy evaluation of pagination metadata,
// matching the shape GraphQL resolvers expect.
//
// All functions return both a value and an error so resolvers can bind them
// directly.
type PageInfo struct {
	TotalCount      func() (*int, error)
	HasPreviousPage func() (bool, error)
	HasNextPage     func() (bool, error)
	StartCursor     func() (*string, error)
	EndCursor       func() (*string, error)
}

// newPageInfo builds PageInfo for one materialized page.
// Cursors are the identity hashes of the first and last item of the page.
func newPageInfo(page []*Item, w PageWindow, totalCount int) PageInfo {
	count := totalCount
	hasNext := !w.Unlimited() && w.endBefore(count) < count
	hasPrev := w.CurPage > 1

	return PageInfo{
		TotalCount:      func() (*int, error) { return &count, nil },
		HasNextPage:     func() (bool, error) { return hasNext, nil },
		HasPreviousPage: func() (bool, error) { return hasPrev, nil },
		StartCursor: func() (*string, error) {
			if len(page) == 0 {
				return nil, nil
			}
			h := page[0].Hash()
			return &h, nil
		},
		EndCursor: func() (*string, error) {
			if len(page) == 0 {
				return nil, nil
			}
			h := page[len(page)-1].Hash()
			return &h, nil
		},
	}
}

// NewEmptyPageInfo describes a first page with nothing on it: a total of 0,
// no cursors and no neighbouring pages. Collections hand it out when they
// could not load, so resolvers never call a nil field.
func NewEmptyPageInfo() *PageInfo {
	info := newPageInfo(nil, PageWindow{CurPage: 1}, 0)
	return &info
}
