package scraper

import "time"

// Selectors contains CSS selectors for the catalog markup
type Selectors struct {
	Card  string
	Title string
	Price string
	Image string
}

// DefaultSelectors returns the selector set for the default catalog layout
func DefaultSelectors() Selectors {
	return Selectors{
		Card:  ".product-card",
		Title: ".product-title",
		Price: ".product-price",
		Image: ".product-image",
	}
}

// Config contains configuration for a scrape run
type Config struct {
	BaseURL   string
	PageLimit int
	ProxyURL  string
	Selectors Selectors

	CacheTTL time.Duration

	FetchTimeout     time.Duration
	FetchMaxAttempts int
	FetchBackoff     time.Duration
}
