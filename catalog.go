package searchresult

// Record source identifiers written by the URL integrity checkers.
const (
	// CategoryURLKeyIdentifier holds categories with a problematic url key.
	CategoryURLKeyIdentifier = "category-url-key"

	// ProductURLPathIdentifier holds products with a problematic url path.
	ProductURLPathIdentifier = "product-url-path"
)

// NewCategoryURLKeyCollection lists the category url key issues.
func NewCategoryURLKeyCollection(source RecordSource, opts ...Option) *Collection {
	return New(source, CategoryURLKeyIdentifier, opts...)
}

// NewProductURLPathCollection lists the product url path issues.
func NewProductURLPathCollection(source RecordSource, opts ...Option) *Collection {
	return New(source, ProductURLPathIdentifier, opts...)
}
