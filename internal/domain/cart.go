package domain

import "github.com/shopspring/decimal"

// Product represents a purchasable catalog entry. Products are immutable;
// cart lines hold a snapshot of the product at the time it was added.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Color    string          `json:"color"`
}

// LineItem is a product snapshot plus a quantity. A cart holds at most one
// line per product id, and a line's quantity is always at least 1.
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is an ordered collection of line items. Line order is first-add order
// and is preserved across quantity adjustments.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem adds a product to the cart. If a line for the product already
// exists its quantity is incremented by 1, otherwise a new line with
// quantity 1 is appended. Always succeeds.
func (c *Cart) AddItem(p Product) {
	if i := c.FindItemIndex(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, LineItem{Product: p, Quantity: 1})
}

// RemoveItem deletes the line for the given product id. Removing an id that
// is not in the cart is a no-op, so removal is idempotent.
func (c *Cart) RemoveItem(productID string) {
	if i := c.FindItemIndex(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// AdjustQuantity changes a line's quantity by delta. If the new quantity
// would be zero or negative the line is left unchanged: quantity is never
// driven to zero here, and only RemoveItem deletes a line. Unknown product
// ids are a no-op.
func (c *Cart) AdjustQuantity(productID string, delta int) {
	i := c.FindItemIndex(productID)
	if i < 0 {
		return
	}
	if newQty := c.Items[i].Quantity + delta; newQty > 0 {
		c.Items[i].Quantity = newQty
	}
}

// ItemCount returns the total number of items in the cart across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalPrice returns the sum of price times quantity across all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the line matching the given product id,
// or -1 if not found.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			return i
		}
	}
	return -1
}
