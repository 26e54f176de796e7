package searchresult

// Paginate returns the window's slice of an already sorted list.
//
// The result starts at (CurPage-1)*PageSize and holds at most PageSize items.
// A start at or past the end yields an empty slice, never an error. A PageSize
// of 0 means no limit: the single page holds every item and any later page is
// empty.
//
// The returned slice shares its backing array with items.
func Paginate(items []*Item, w PageWindow) []*Item {
	if w.Unlimited() {
		if w.CurPage > 1 {
			return []*Item{}
		}
		return items
	}

	start := w.Start()
	if start >= len(items) {
		return []*Item{}
	}

	return items[start:w.endBefore(len(items))]
}

// LastPageNumber returns the number of the last page for totalCount items:
// 1 for an empty set or an unlimited page size.
func LastPageNumber(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 1
	}
	return (totalCount + pageSize - 1) / pageSize
}
