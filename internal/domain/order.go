package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// SizeStandard is the display size assigned to every order line. Size is not
// tracked in the cart, so the projection synthesizes a fixed label.
const SizeStandard = "Standard"

// DeliveryEstimateDays is how far ahead of the order date delivery is promised.
const DeliveryEstimateDays = 7

// orderDateLayout renders dates like "January 2, 2006" on order documents.
const orderDateLayout = "January 2, 2006"

// OrderLine is the checkout/confirmation display projection of a cart line.
// Category and image are dropped; size is synthesized.
type OrderLine struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderLines converts cart lines to order lines, preserving cart order.
func OrderLines(items []LineItem) []OrderLine {
	lines := make([]OrderLine, len(items))
	for i, item := range items {
		lines[i] = OrderLine{
			ID:       item.ID,
			Name:     item.Name,
			Color:    item.Color,
			Size:     SizeStandard,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	return lines
}

// ShippingAdjustment holds the externally supplied shipping cost and discount
// applied to an order total. Both amounts are fixed policy values, not derived
// from cart contents.
type ShippingAdjustment struct {
	Cost     decimal.Decimal `json:"cost"`
	Discount decimal.Decimal `json:"discount"`
}

// Summary holds the derived totals for a set of order lines.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeSummary calculates subtotal and total for the given order lines:
// subtotal is the sum of price times quantity, total is subtotal plus
// shipping cost minus shipping discount. The total is not floored at zero;
// a discount exceeding subtotal plus cost yields a negative total.
func ComputeSummary(lines []OrderLine, shipping ShippingAdjustment) Summary {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return Summary{
		Subtotal: subtotal,
		Total:    subtotal.Add(shipping.Cost).Sub(shipping.Discount),
	}
}

// Order is the record stamped when payment completes. It is immutable for
// the remainder of the session.
type Order struct {
	Number            string             `json:"number"`
	Items             []OrderLine        `json:"items"`
	OrderDate         time.Time          `json:"order_date"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
	PaymentMethod     string             `json:"payment_method"`
	Shipping          ShippingAdjustment `json:"shipping"`
}

// Summary returns the order's derived totals.
func (o *Order) Summary() Summary {
	return ComputeSummary(o.Items, o.Shipping)
}

// FormattedOrderDate renders the order date as e.g. "January 2, 2006".
func (o *Order) FormattedOrderDate() string {
	return o.OrderDate.Format(orderDateLayout)
}

// FormattedEstimatedDelivery renders the delivery estimate as e.g. "January 9, 2006".
func (o *Order) FormattedEstimatedDelivery() string {
	return o.EstimatedDelivery.Format(orderDateLayout)
}

// EstimatedDelivery returns the delivery estimate for an order placed at now.
func EstimatedDelivery(now time.Time) time.Time {
	return now.AddDate(0, 0, DeliveryEstimateDays)
}

// NewOrderNumber generates a human-facing order identifier of the form
// ORD-0042: a 4-digit zero-padded integer drawn uniformly from [0, 9999].
// Numbers are NOT guaranteed unique; collisions occur at roughly 1 in 10000
// per order. Acceptable for a demo-grade identifier only.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%04d", rand.Intn(10000))
}
