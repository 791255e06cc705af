package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"pmj0612/shopscraper/internal/models"
)

// JSONFileStore implements Store using a single JSON array file
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore creates a new JSON file store, creating the parent
// directory if needed
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &JSONFileStore{path: path}, nil
}

// Append adds a record by rewriting the whole array file
func (s *JSONFileStore) Append(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadLocked()
	if err != nil {
		return err
	}
	products = append(products, product)

	data, err := json.MarshalIndent(products, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// LoadAll returns every stored record in append order
func (s *JSONFileStore) LoadAll() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// loadLocked reads the array file; a missing or empty file is an empty store
func (s *JSONFileStore) loadLocked() ([]models.Product, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Close is a no-op; the file is not held open between operations
func (s *JSONFileStore) Close() error {
	return nil
}
