package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"pmj0612/shopscraper/internal/models"
)

// SQLiteStore implements Store using an embedded SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database file and ensures the
// products table exists
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS products (
		"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"product_title" TEXT NOT NULL,
		"product_price" REAL NOT NULL,
		"image_url" TEXT NOT NULL
	);`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Append inserts one record
func (s *SQLiteStore) Append(product models.Product) error {
	_, err := s.db.Exec(
		`INSERT INTO products (product_title, product_price, image_url) VALUES (?, ?, ?)`,
		product.Title, product.Price, product.ImageURL,
	)
	return err
}

// LoadAll returns every stored record in insertion order
func (s *SQLiteStore) LoadAll() ([]models.Product, error) {
	rows, err := s.db.Query(
		`SELECT product_title, product_price, image_url FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Title, &p.Price, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
