package models

import "encoding/json"

// Product represents one scraped catalog entry
type Product struct {
	Title    string  `json:"product_title"`
	Price    float64 `json:"product_price"`
	ImageURL string  `json:"image_url"`
}

// Key returns the cache key identifying this product across runs
func (p Product) Key() string {
	return p.Title
}

// Marshal serializes the product for cache and file storage
func (p Product) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal deserializes a stored product
func Unmarshal(data []byte) (Product, error) {
	var p Product
	err := json.Unmarshal(data, &p)
	return p, err
}
