package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pmj0612/shopscraper/internal/models"
)

// PostgresStore implements Store using a PostgreSQL table
type PostgresStore struct {
	pool *pgxpool.Pool
	ctx  context.Context
}

// NewPostgresStore connects to PostgreSQL and ensures the products table
// exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			product_title TEXT NOT NULL,
			product_price DOUBLE PRECISION NOT NULL,
			image_url TEXT NOT NULL
		)`)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool, ctx: ctx}, nil
}

// Append inserts one record
func (s *PostgresStore) Append(product models.Product) error {
	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO products (product_title, product_price, image_url) VALUES ($1, $2, $3)`,
		product.Title, product.Price, product.ImageURL,
	)
	return err
}

// LoadAll returns every stored record in insertion order
func (s *PostgresStore) LoadAll() ([]models.Product, error) {
	rows, err := s.pool.Query(s.ctx,
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

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
