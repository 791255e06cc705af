package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService using memcache
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
	}
}

// sanitizeKey maps an arbitrary key onto one the memcache protocol accepts.
// Keys over 250 bytes or containing spaces or control characters are
// replaced by their SHA-1 hex digest.
func sanitizeKey(key string) string {
	if len(key) <= 250 {
		valid := true
		for i := 0; i < len(key); i++ {
			if key[i] <= ' ' || key[i] == 0x7f {
				valid = false
				break
			}
		}
		if valid {
			return key
		}
	}
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a value from memcache
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(sanitizeKey(key))
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        sanitizeKey(key),
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(sanitizeKey(key))
}

// Close is a no-op; the memcache client pools connections internally
func (m *MemcacheService) Close() error {
	return nil
}
