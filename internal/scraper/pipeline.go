package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"pmj0612/shopscraper/internal/models"
	"pmj0612/shopscraper/logger"
	"pmj0612/shopscraper/pkg/errors"
	"pmj0612/shopscraper/services/cache"
	"pmj0612/shopscraper/services/notifier"
	"pmj0612/shopscraper/services/storage"
)

// Pipeline runs one scrape pass over the catalog pages
type Pipeline struct {
	config    Config
	base      *url.URL
	fetcher   *PageFetcher
	extractor *Extractor
	detector  *ChangeDetector
	cache     cache.CacheService
	store     storage.Store
	notifier  notifier.Notifier
	log       *logger.Logger
}

// NewPipeline wires the pipeline for a single invocation
func NewPipeline(config Config, cacheSvc cache.CacheService, store storage.Store, n notifier.Notifier) (*Pipeline, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, errors.NewConfiguration("pipeline", fmt.Sprintf("invalid base url %q", config.BaseURL), err)
	}

	fetcher, err := NewPageFetcher(config.FetchTimeout, config.FetchMaxAttempts, config.FetchBackoff, config.ProxyURL)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:    config,
		base:      base,
		fetcher:   fetcher,
		extractor: NewExtractor(config.Selectors),
		detector:  NewChangeDetector(cacheSvc),
		cache:     cacheSvc,
		store:     store,
		notifier:  n,
		log:       logger.For("pipeline"),
	}, nil
}

// Run scrapes pages 1..PageLimit strictly in order and returns the number of
// records stored as new or changed. A page that cannot be fetched or parsed
// is skipped without affecting the others; an error is returned only when
// the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	updated := 0

	for page := 1; page <= p.config.PageLimit; page++ {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		pageURL := p.pageURL(page)

		body, err := p.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return updated, ctx.Err()
			}
			p.log.Warn().
				Str("url", pageURL).
				Int("page", page).
				Err(err).
				Msg("Skipping page after failed fetch")
			continue
		}

		products, err := p.extractor.Extract(body)
		if err != nil {
			p.log.Warn().
				Str("url", pageURL).
				Int("page", page).
				Err(err).
				Msg("Skipping page after failed parse")
			continue
		}

		updated += p.processProducts(products)
	}

	message := fmt.Sprintf("%d products scraped and updated.", updated)
	if err := p.notifier.Notify(message); err != nil {
		p.log.Error().Err(err).Msg("Failed to send run notification")
	}

	return updated, nil
}

// processProducts stores and caches the records whose price is new or
// changed, in page order, and returns how many were recorded
func (p *Pipeline) processProducts(products []models.Product) int {
	count := 0

	for _, product := range products {
		if !p.detector.IsChanged(product) {
			continue
		}

		if err := p.store.Append(product); err != nil {
			p.log.Error().
				Str("title", product.Title).
				Err(err).
				Msg("Failed to store product")
			continue
		}

		data, err := product.Marshal()
		if err == nil {
			err = p.cache.Set(product.Key(), data, p.config.CacheTTL)
		}
		if err != nil {
			p.log.Error().
				Str("title", product.Title).
				Err(err).
				Msg("Failed to cache product")
		}

		count++
	}

	return count
}

// pageURL returns the catalog URL for one page by setting the page query
// parameter on the base URL
func (p *Pipeline) pageURL(page int) string {
	u := *p.base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
