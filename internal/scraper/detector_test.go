package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pmj0612/shopscraper/internal/models"
)

func TestDetectorNeverSeenProduct(t *testing.T) {
	mockCache := NewMockCacheService()
	d := NewChangeDetector(mockCache)

	changed := d.IsChanged(models.Product{Title: "Widget", Price: 10.0, ImageURL: "https://cdn.example.com/w.png"})
	assert.True(t, changed, "a product with no cache entry is changed")
}

func TestDetectorPriceComparison(t *testing.T) {
	mockCache := NewMockCacheService()
	d := NewChangeDetector(mockCache)

	cached := models.Product{Title: "Widget", Price: 10.0, ImageURL: "https://cdn.example.com/w.png"}
	data, err := cached.Marshal()
	assert.NoError(t, err)
	assert.NoError(t, mockCache.Set("Widget", data, 0))
	mockCache.sets = 0

	// Same price: unchanged
	assert.False(t, d.IsChanged(models.Product{Title: "Widget", Price: 10.0, ImageURL: "https://cdn.example.com/w.png"}))

	// Price moved from 10.00 to 12.00: changed
	assert.True(t, d.IsChanged(models.Product{Title: "Widget", Price: 12.0, ImageURL: "https://cdn.example.com/w.png"}))

	// The detector never writes to the cache
	assert.Equal(t, 0, mockCache.sets)
}

func TestDetectorCorruptCacheEntry(t *testing.T) {
	mockCache := NewMockCacheService()
	d := NewChangeDetector(mockCache)

	assert.NoError(t, mockCache.Set("Widget", []byte("not json"), 0))

	changed := d.IsChanged(models.Product{Title: "Widget", Price: 10.0, ImageURL: "https://cdn.example.com/w.png"})
	assert.True(t, changed, "an unreadable cache entry counts as changed")
}

func TestDetectorCacheBackendError(t *testing.T) {
	mockCache := NewMockCacheService()
	mockCache.getErr = &mockError{message: "connection refused"}
	d := NewChangeDetector(mockCache)

	changed := d.IsChanged(models.Product{Title: "Widget", Price: 10.0, ImageURL: "https://cdn.example.com/w.png"})
	assert.True(t, changed, "a cache read failure counts as changed")
}
