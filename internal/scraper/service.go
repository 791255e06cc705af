package scraper

import (
	"context"
	"fmt"

	"pmj0612/shopscraper/pkg/errors"
	"pmj0612/shopscraper/services/cache"
	"pmj0612/shopscraper/services/notifier"
	"pmj0612/shopscraper/services/storage"
)

// Service owns the shared collaborators and builds one pipeline per
// invocation
type Service struct {
	config   Config
	cache    cache.CacheService
	store    storage.Store
	notifier notifier.Notifier
}

// NewService creates a scrape service over the shared cache, store and
// notifier. The config supplies the base URL, selectors, cache TTL, fetch
// settings and the default page limit.
func NewService(config Config, cacheSvc cache.CacheService, store storage.Store, n notifier.Notifier) *Service {
	return &Service{
		config:   config,
		cache:    cacheSvc,
		store:    store,
		notifier: n,
	}
}

// DefaultPageLimit returns the configured default page limit
func (s *Service) DefaultPageLimit() int {
	return s.config.PageLimit
}

// Invoke runs one scrape over the first pageLimit catalog pages, optionally
// through a proxy. Invocations share the collaborators but no per-run state.
func (s *Service) Invoke(ctx context.Context, pageLimit int, proxyURL string) (int, error) {
	if pageLimit < 1 {
		return 0, errors.NewValidation("pipeline", fmt.Sprintf("page limit must be at least 1, got %d", pageLimit))
	}

	config := s.config
	config.PageLimit = pageLimit
	config.ProxyURL = proxyURL

	pipeline, err := NewPipeline(config, s.cache, s.store, s.notifier)
	if err != nil {
		return 0, err
	}

	return pipeline.Run(ctx)
}
