package searchresult

// PageConfig holds page size configuration for a collection.
// Use NewPageConfig() to create a config with the defaults, then customize
// using the With* methods.
//
// Example:
//
//	cfg := searchresult.NewPageConfig().WithDefaultSize(20).WithMaxSize(200)
//	c := searchresult.New(store, id, searchresult.WithPageConfig(cfg))
type PageConfig struct {
	// DefaultSize is used when no page size was requested. 0 means no limit.
	DefaultSize int

	// MaxSize caps requested page sizes (not rejected). 0 means no cap.
	MaxSize int
}

// NewPageConfig creates a PageConfig without a default size or a cap, so an
// unconfigured collection returns every item on page 1.
func NewPageConfig() *PageConfig {
	return &PageConfig{}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// EffectiveSize returns the page size to use, applying defaults and caps.
//   - requested <= 0 returns DefaultSize (which may itself be 0, no limit)
//   - an unlimited size or one above MaxSize returns MaxSize when a cap is set
//   - otherwise requested is returned unchanged
func (c *PageConfig) EffectiveSize(requested int) int {
	if c == nil {
		c = NewPageConfig()
	}

	size := requested
	if size <= 0 {
		size = max(c.DefaultSize, 0)
	}

	if c.MaxSize > 0 && (size == 0 || size > c.MaxSize) {
		return c.MaxSize
	}

	return size
}

// Validate checks if the page size exceeds MaxSize and returns a *PageSizeError
// if so. Unlike EffectiveSize which caps silently, Validate is for hosts that
// prefer to reject oversized requests explicitly.
func (c *PageConfig) Validate(requested int) error {
	if c == nil || c.MaxSize <= 0 {
		return nil
	}

	if requested > c.MaxSize {
		return &PageSizeError{
			Requested: requested,
			Maximum:   c.MaxSize,
		}
	}

	return nil
}
