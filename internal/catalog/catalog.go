// Package catalog holds the static product list and its stock ledger.
package catalog

import (
	"errors"
	"sync"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Color string `json:"color"`
	Style string `json:"style"`
	Price Money  `json:"price"`
	Stock int    `json:"stock"`
}

// StockLevel is the check_stock projection.
type StockLevel struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// Profile drives Recommend; a product matches on any listed brand, color or style.
type Profile struct {
	Brands []string `json:"brands"`
	Colors []string `json:"colors"`
	Styles []string `json:"styles"`
}

const maxRecommendations = 3

// Catalog is a stock ledger keyed by product id. Every stock change goes
// through Decrement under mu.
type Catalog struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*Product
}

// New builds a catalog from seed. Seed entries are copied.
func New(seed []Product) *Catalog {
	c := &Catalog{products: make(map[string]*Product, len(seed))}
	for i := range seed {
		p := seed[i]
		if _, dup := c.products[p.ID]; !dup {
			c.order = append(c.order, p.ID)
		}
		c.products[p.ID] = &p
	}
	return c
}

// Default returns a fresh catalog seeded with DefaultProducts.
func Default() *Catalog {
	return New(DefaultProducts())
}

// List returns copies of all products in seed order.
func (c *Catalog) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.products[id])
	}
	return out
}

func (c *Catalog) Get(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// CheckStock reports the stock of id; unknown products report zero.
func (c *Catalog) CheckStock(id string) StockLevel {
	p, ok := c.Get(id)
	if !ok {
		return StockLevel{ProductID: id, Stock: 0}
	}
	return StockLevel{ProductID: id, Stock: p.Stock}
}

// Decrement removes qty units of id, floored at zero, and returns the new level.
func (c *Catalog) Decrement(id string, qty int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return 0, ErrProductNotFound
	}
	if qty > 0 {
		p.Stock -= qty
		if p.Stock < 0 {
			p.Stock = 0
		}
	}
	return p.Stock, nil
}

// Recommend scans products in seed order and returns at most three matches.
func (c *Catalog) Recommend(profile Profile) []Product {
	brands := toSet(profile.Brands)
	colors := toSet(profile.Colors)
	styles := toSet(profile.Styles)

	matches := make([]Product, 0, maxRecommendations)
	for _, p := range c.List() {
		if brands[p.Brand] || colors[p.Color] || styles[p.Style] {
			matches = append(matches, p)
		}
		if len(matches) >= maxRecommendations {
			break
		}
	}
	return matches
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
