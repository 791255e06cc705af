package scraper

import (
	"sync"
	"time"

	"pmj0612/shopscraper/internal/models"
	"pmj0612/shopscraper/services/cache"
	"pmj0612/shopscraper/services/notifier"
	"pmj0612/shopscraper/services/storage"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	mu     sync.Mutex
	cache  map[string][]byte
	getErr error
	setErr error
	sets   int
}

// Ensure MockCacheService implements cache.CacheService
var _ cache.CacheService = (*MockCacheService)(nil)

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	m.cache[key] = valueCopy
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, key)
	return nil
}

func (m *MockCacheService) Close() error {
	return nil
}

func (m *MockCacheService) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cache[key]
	return ok
}

// MockStore implements an in-memory append log for testing
type MockStore struct {
	mu        sync.Mutex
	products  []models.Product
	appendErr map[string]error
}

// Ensure MockStore implements storage.Store
var _ storage.Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{
		appendErr: make(map[string]error),
	}
}

func (m *MockStore) Append(product models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.appendErr[product.Title]; ok {
		return err
	}
	m.products = append(m.products, product)
	return nil
}

func (m *MockStore) LoadAll() ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MockStore) Close() error {
	return nil
}

// MockNotifier records notifications for testing
type MockNotifier struct {
	mu        sync.Mutex
	messages  []string
	notifyErr error
}

// Ensure MockNotifier implements notifier.Notifier
var _ notifier.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notifyErr != nil {
		return m.notifyErr
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *MockNotifier) Close() error {
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}
