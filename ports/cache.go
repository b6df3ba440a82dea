package ports

// CachePort is the caching collaborator: get/set/delete by category and
// key, with category-specific TTLs chosen by the adapter. Purely a
// performance layer; every caller must be correct when lookups miss.
type CachePort interface {
	Get(category, key string) (any, bool)
	Set(category, key string, value any)
	Delete(category, key string)
}
