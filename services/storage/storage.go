package storage

import (
	"pmj0612/shopscraper/internal/models"
)

// Store represents an append-only log of scraped product observations
type Store interface {
	// Append adds one product record to the store
	Append(product models.Product) error

	// LoadAll returns every stored record in append order
	LoadAll() ([]models.Product, error)

	// Close closes the store
	Close() error
}
