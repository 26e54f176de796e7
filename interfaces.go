// Package searchresult presents a one-shot, unordered set of flat records as a
// sortable, paginated search result with stable item identities.
//
// There is no queryable store behind a Collection. It pulls the complete record
// set from a RecordSource once, sorts it in memory by a single field, captures the
// total count and only then slices out the requested page.
//
// Example usage:
//
//	store := source.NewMemory()
//	c := searchresult.NewCategoryURLKeyCollection(store,
//	    searchresult.WithOrder("id", searchresult.ASC),
//	    searchresult.WithPageSize(20),
//	    searchresult.WithCurPage(2),
//	)
//	items, err := c.Items(ctx)
//	total, err := c.TotalCount(ctx)
package searchresult

import "context"

// RecordSource is the external provider of diagnostic records.
//
// Read must return the complete record set for identifier in one call. The
// returned records are treated as read-only by the caller; a source keeps no
// reference to the collection that read them.
//
// An identifier that has never been written is not an error: implementations
// return an empty set.
type RecordSource interface {
	Read(ctx context.Context, identifier string) ([]Record, error)
}

// RecordSourceFunc is a function adapter that implements RecordSource.
type RecordSourceFunc func(ctx context.Context, identifier string) ([]Record, error)

// Read implements RecordSource.
func (f RecordSourceFunc) Read(ctx context.Context, identifier string) ([]Record, error) {
	return f(ctx, identifier)
}

// SearchResult is the listing contract a host grid consumes.
//
// Operations that have no meaning for a self-loading, read-only collection
// (externally supplied items, aggregations, search criteria or totals) are part
// of the contract but always fail with a *NotImplementedError.
type SearchResult interface {
	Load(ctx context.Context) error
	IsLoaded() bool

	Items(ctx context.Context) ([]*Item, error)
	TotalCount(ctx context.Context) (int, error)
	CurPage() int
	PageSize() int
	Orders() []Order
	Select() *Select

	SetItems(items []*Item) error
	Aggregations() (any, error)
	SetAggregations(aggregations any) error
	SearchCriteria() (any, error)
	SetSearchCriteria(criteria any) error
	SetTotalCount(totalCount int) error
}
