package scraper

import (
	"pmj0612/shopscraper/internal/models"
	"pmj0612/shopscraper/services/cache"
)

// ChangeDetector decides whether a scraped product differs from the cached
// observation under the same title
type ChangeDetector struct {
	cache cache.CacheService
}

// NewChangeDetector creates a detector backed by the given cache
func NewChangeDetector(cacheSvc cache.CacheService) *ChangeDetector {
	return &ChangeDetector{cache: cacheSvc}
}

// IsChanged reports whether the product is new or its price moved since the
// cached observation. A missing, expired or unreadable cache entry counts as
// changed. Prices are compared for exact equality. The detector only reads
// the cache.
func (d *ChangeDetector) IsChanged(product models.Product) bool {
	data, err := d.cache.Get(product.Key())
	if err != nil {
		return true
	}

	cached, err := models.Unmarshal(data)
	if err != nil {
		return true
	}

	return cached.Price != product.Price
}
