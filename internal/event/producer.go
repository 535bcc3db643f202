package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	pkgkafka "github.com/yasheela-alla/cartIt/pkg/kafka"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

// Kafka topic constants for checkout domain events.
const (
	TopicCartUpdated = "cartit.cart.updated"
	TopicOrderPlaced = "cartit.order.placed"
)

// Aggregate type constant.
const AggregateTypeSession = "checkout_session"

// Source identifier for events originating from the checkout service.
const SourceCheckoutService = "checkout-service"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID  string          `json:"session_id"`
	Items      []CartItemData  `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	SessionID     string          `json:"session_id"`
	OrderNumber   string          `json:"order_number"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// Producer publishes checkout domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the checkout service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event for the session.
func (p *Producer) PublishCartUpdated(ctx context.Context, session *domain.CheckoutSession) error {
	items := make([]CartItemData, len(session.Cart.Items))
	for i, item := range session.Cart.Items {
		items[i] = CartItemData{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID:  session.ID,
		Items:      items,
		ItemCount:  session.Cart.ItemCount(),
		TotalPrice: session.Cart.TotalPrice(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, session.ID, AggregateTypeSession, SourceCheckoutService, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", session.ID),
		slog.Int("item_count", session.Cart.ItemCount()),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event once payment completes.
func (p *Producer) PublishOrderPlaced(ctx context.Context, session *domain.CheckoutSession) error {
	if session.Order == nil {
		return fmt.Errorf("session %s has no order", session.ID)
	}

	summary := session.Order.Summary()
	data := OrderPlacedData{
		SessionID:     session.ID,
		OrderNumber:   session.Order.Number,
		PaymentMethod: session.Order.PaymentMethod,
		ItemCount:     len(session.Order.Items),
		Subtotal:      summary.Subtotal,
		Total:         summary.Total,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, session.ID, AggregateTypeSession, SourceCheckoutService, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("session_id", session.ID),
		slog.String("order_number", session.Order.Number),
	)

	return nil
}
