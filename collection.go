package searchresult

import (
	"context"
	"slices"
	"time"

	"github.com/friendsofgo/errors"
	"go.uber.org/zap"
)

var _ SearchResult = (*Collection)(nil)

// Collection is a search result over the records a RecordSource yields for one
// fixed identifier.
//
// A Collection loads at most once. Loading reads every record, builds items,
// applies the first configured order, captures the total count and finally
// keeps only the configured page. Page and order settings must therefore be
// made before the first call that loads (Load, Items, TotalCount, ...); later
// changes are stored but have no effect on the loaded page or its accessors.
//
// A Collection is not safe for concurrent use. Use one instance per request.
type Collection struct {
	identifier string
	source     RecordSource
	sel        *Select

	orders   orderList
	curPage  int
	pageSize int
	config   *PageConfig

	logger   *zap.Logger
	logQuery bool

	loaded     bool
	page       PageWindow
	sortedBy   *Order
	items      []*Item
	totalCount int
	pageInfo   PageInfo
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger used to report loads. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPageConfig sets the default and maximum page size.
func WithPageConfig(cfg *PageConfig) Option {
	return func(c *Collection) {
		if cfg != nil {
			c.config = cfg
		}
	}
}

// WithQueryLogging logs the description of the emulated query on load.
func WithQueryLogging(enabled bool) Option {
	return func(c *Collection) {
		c.logQuery = enabled
	}
}

// WithCurPage sets the 1-based page to materialize.
func WithCurPage(page int) Option {
	return func(c *Collection) {
		c.SetCurPage(page)
	}
}

// WithPageSize sets the page size. 0 means no limit.
func WithPageSize(size int) Option {
	return func(c *Collection) {
		c.SetPageSize(size)
	}
}

// WithOrder adds a sort order. Only the first order of a collection is applied.
func WithOrder(field string, dir Direction) Option {
	return func(c *Collection) {
		c.SetOrder(field, dir)
	}
}

// New creates a collection reading identifier from source.
func New(source RecordSource, identifier string, opts ...Option) *Collection {
	c := &Collection{
		identifier: identifier,
		source:     source,
		curPage:    1,
		config:     NewPageConfig(),
		logger:     zap.NewNop(),
	}
	c.sel = newSelect(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads, sorts, counts and pages the records. It is a no-op once the
// collection is loaded.
//
// Errors from the record source are returned unmodified and leave the
// collection not loaded, so a later Load starts from scratch.
func (c *Collection) Load(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	started := time.Now()

	records, err := c.source.Read(ctx, c.identifier)
	if err != nil {
		c.logger.Debug("record source read failed",
			zap.String("identifier", c.identifier),
			zap.Error(err),
		)
		return err
	}

	items := make([]*Item, 0, len(records))
	for i, rec := range records {
		item, err := NewItem(rec)
		if err != nil {
			return errors.Wrapf(err, "record at index %d", i)
		}
		items = append(items, item)
	}

	order, sorted := c.orders.first()
	if sorted {
		SortItems(items, order)
		c.sortedBy = &order
	}

	// The window is fixed from the settings before the collection counts as
	// loaded; window() reports the captured one from then on.
	w := c.window()
	c.page = w
	c.loaded = true

	// The total is taken from the full sorted list; slicing comes after.
	c.totalCount = len(items)

	c.items = slices.Clone(Paginate(items, w))
	c.pageInfo = newPageInfo(c.items, w, c.totalCount)

	fields := []zap.Field{
		zap.String("identifier", c.identifier),
		zap.Int("total_count", c.totalCount),
		zap.Int("page_items", len(c.items)),
		zap.Int("cur_page", w.CurPage),
		zap.Int("page_size", w.PageSize),
		zap.Duration("took", time.Since(started)),
	}
	if sorted {
		fields = append(fields, zap.String("order", orderByClause(order)))
	}
	if c.logQuery {
		fields = append(fields, zap.Stringer("query", c.sel))
	}
	c.logger.Debug("search result loaded", fields...)

	return nil
}

// IsLoaded reports whether the collection has been loaded.
func (c *Collection) IsLoaded() bool {
	return c.loaded
}

// Identifier returns the record source identifier the collection is bound to.
func (c *Collection) Identifier() string {
	return c.identifier
}

// Items returns the items of the configured page, loading first if needed.
func (c *Collection) Items(ctx context.Context) ([]*Item, error) {
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(c.items), nil
}

// Count returns the number of items on the loaded page.
func (c *Collection) Count(ctx context.Context) (int, error) {
	if err := c.Load(ctx); err != nil {
		return 0, err
	}
	return len(c.items), nil
}

// FirstItem returns the first item of the page, or nil for an empty page.
func (c *Collection) FirstItem(ctx context.Context) (*Item, error) {
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	if len(c.items) == 0 {
		return nil, nil
	}
	return c.items[0], nil
}

// LastItem returns the last item of the page, or nil for an empty page.
func (c *Collection) LastItem(ctx context.Context) (*Item, error) {
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	if len(c.items) == 0 {
		return nil, nil
	}
	return c.items[len(c.items)-1], nil
}

// ItemByID looks an item of the page up by its identity hash.
// It returns nil when no item on the page has that hash.
func (c *Collection) ItemByID(ctx context.Context, id string) (*Item, error) {
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	for _, item := range c.items {
		if item.ID() == id {
			return item, nil
		}
	}
	return nil, nil
}

// TotalCount returns the number of records the source yielded, independent of
// the page window. It loads the collection first if needed.
func (c *Collection) TotalCount(ctx context.Context) (int, error) {
	if err := c.Load(ctx); err != nil {
		return 0, err
	}
	return c.totalCount, nil
}

// Size is an alias of TotalCount, as host grids call it.
func (c *Collection) Size(ctx context.Context) (int, error) {
	return c.TotalCount(ctx)
}

// LastPageNumber returns the number of the last page for the loaded total.
func (c *Collection) LastPageNumber(ctx context.Context) (int, error) {
	total, err := c.TotalCount(ctx)
	if err != nil {
		return 0, err
	}
	return LastPageNumber(total, c.window().PageSize), nil
}

// PageInfo returns the page metadata, loading first if needed.
func (c *Collection) PageInfo(ctx context.Context) (PageInfo, error) {
	if err := c.Load(ctx); err != nil {
		return *NewEmptyPageInfo(), err
	}
	return c.pageInfo, nil
}

// CurPage returns the configured 1-based page number.
func (c *Collection) CurPage() int {
	return c.window().CurPage
}

// PageSize returns the effective page size after defaults and caps. 0 means no limit.
func (c *Collection) PageSize() int {
	return c.window().PageSize
}

// SetCurPage sets the page to materialize. Values below 1 select page 1.
func (c *Collection) SetCurPage(page int) *Collection {
	c.curPage = max(page, 1)
	return c
}

// SetPageSize sets the requested page size. Negative values mean no limit.
func (c *Collection) SetPageSize(size int) *Collection {
	c.pageSize = max(size, 0)
	return c
}

// SetOrder sets the direction of field. An already configured field keeps its
// position; a new one is appended after the existing orders.
func (c *Collection) SetOrder(field string, dir Direction) *Collection {
	c.orders = c.orders.set(field, dir)
	return c
}

// AddOrder is an alias of SetOrder.
func (c *Collection) AddOrder(field string, dir Direction) *Collection {
	return c.SetOrder(field, dir)
}

// UnshiftOrder puts field in front of every other order, making it the one
// that is applied.
func (c *Collection) UnshiftOrder(field string, dir Direction) *Collection {
	c.orders = c.orders.unshift(field, dir)
	return c
}

// Orders returns the configured orders in configuration order. Only the first
// one is applied on load; the others are kept but ignored.
func (c *Collection) Orders() []Order {
	return slices.Clone([]Order(c.orders))
}

// Select returns the collection's query handle. It is never nil and never
// runs a query.
func (c *Collection) Select() *Select {
	return c.sel
}

// SetItems is not supported: items only come from the record source.
func (c *Collection) SetItems(items []*Item) error {
	return notImplemented("SetItems")
}

// Aggregations is not supported.
func (c *Collection) Aggregations() (any, error) {
	return nil, notImplemented("Aggregations")
}

// SetAggregations is not supported.
func (c *Collection) SetAggregations(aggregations any) error {
	return notImplemented("SetAggregations")
}

// SearchCriteria is not supported: the collection is not built from criteria.
func (c *Collection) SearchCriteria() (any, error) {
	return nil, notImplemented("SearchCriteria")
}

// SetSearchCriteria is not supported.
func (c *Collection) SetSearchCriteria(criteria any) error {
	return notImplemented("SetSearchCriteria")
}

// SetTotalCount is not supported: the total is always captured on load.
func (c *Collection) SetTotalCount(totalCount int) error {
	return notImplemented("SetTotalCount")
}

// window returns the page window captured on load, or the one the current
// settings produce before that.
func (c *Collection) window() PageWindow {
	if c.loaded {
		return c.page
	}
	return PageWindow{
		CurPage:  c.curPage,
		PageSize: c.config.EffectiveSize(c.pageSize),
	}
}

// activeOrder returns the order used on load, or the one that would be used.
func (c *Collection) activeOrder() (Order, bool) {
	if c.loaded {
		if c.sortedBy == nil {
			return Order{}, false
		}
		return *c.sortedBy, true
	}
	return c.orders.first()
}
