package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

// Catalog is a fixed, ordered list of purchasable products with id lookup.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// New builds a catalog from an ordered product list. Later duplicates of an
// id are ignored; the first occurrence wins.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		if _, ok := c.byID[p.ID]; ok {
			continue
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c
}

// Products returns the catalog entries in their fixed order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Default returns the built-in storefront catalog.
func Default() *Catalog {
	return New([]domain.Product{
		{
			ID:       "1",
			Name:     "Nike Air Jordan 1",
			Price:    decimal.RequireFromString("189.99"),
			Category: "Sneakers",
			Image:    "https://images.unsplash.com/photo-1600269452121-4f2416e55c28?ixlib=rb-4.0.3&q=80&fm=jpg&crop=entropy&cs=tinysrgb&w=256",
			Color:    "University Blue/Black",
		},
		{
			ID:       "2",
			Name:     "Nike Dunk Low",
			Price:    decimal.RequireFromString("119.99"),
			Category: "Sneakers",
			Image:    "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?ixlib=rb-4.0.3&q=80&fm=jpg&crop=entropy&cs=tinysrgb&w=256",
			Color:    "Panda",
		},
		{
			ID:       "3",
			Name:     "AirPods Pro 2",
			Price:    decimal.RequireFromString("249.99"),
			Category: "Audio",
			Image:    "https://images.unsplash.com/photo-1606741965429-7dd1631ac892?ixlib=rb-4.0.3&q=80&fm=jpg&crop=entropy&cs=tinysrgb&w=256",
			Color:    "White",
		},
		{
			ID:       "6",
			Name:     "Levi's 501 Jeans",
			Price:    decimal.RequireFromString("98.99"),
			Category: "Apparel",
			Image:    "https://images.unsplash.com/photo-1604176354204-9268737828e4?ixlib=rb-4.0.3&q=80&fm=jpg&crop=entropy&cs=tinysrgb&w=256",
			Color:    "Vintage Blue",
		},
		{
			ID:       "7",
			Name:     "Polaroid Now Camera",
			Price:    decimal.RequireFromString("119.99"),
			Category: "Photography",
			Image:    "https://images.unsplash.com/photo-1623123410404-8f4b7b3793d2?ixlib=rb-4.0.3&q=80&fm=jpg&crop=entropy&cs=tinysrgb&w=256",
			Color:    "White & Rainbow",
		},
		{
			ID:       "8",
			Name:     "Mechanical Keyboard",
			Price:    decimal.RequireFromString("129.99"),
			Category: "Tech",
			Image:    "https://images.unsplash.com/photo-1618384887929-16ec33fab9ef?ixlib=rb-4.0.3&q=80&fm=jpg&crop=entropy&cs=tinysrgb&w=256",
			Color:    "RGB Backlit",
		},
	})
}
