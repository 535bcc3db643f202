package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	apperrors "github.com/yasheela-alla/cartIt/pkg/errors"

	"github.com/yasheela-alla/cartIt/internal/catalog"
	"github.com/yasheela-alla/cartIt/internal/domain"
	"github.com/yasheela-alla/cartIt/internal/repository"
)

var ordersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "checkout_orders_placed_total",
		Help: "Total number of orders placed, by payment method",
	},
	[]string{"payment_method"},
)

// EventPublisher publishes checkout lifecycle events. Publishing is
// best-effort: callers log failures and carry on.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, session *domain.CheckoutSession) error
	PublishOrderPlaced(ctx context.Context, session *domain.CheckoutSession) error
}

// CheckoutService implements the business logic for the checkout flow: cart
// operations, step transitions, and order stamping.
type CheckoutService struct {
	catalog  *catalog.Catalog
	repo     repository.SessionRepository
	producer EventPublisher
	logger   *slog.Logger
	shipping domain.ShippingAdjustment

	// Injection points for deterministic tests.
	now         func() time.Time
	orderNumber func() string
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cat *catalog.Catalog,
	repo repository.SessionRepository,
	producer EventPublisher,
	logger *slog.Logger,
	shipping domain.ShippingAdjustment,
) *CheckoutService {
	return &CheckoutService{
		catalog:     cat,
		repo:        repo,
		producer:    producer,
		logger:      logger,
		shipping:    shipping,
		now:         func() time.Time { return time.Now().UTC() },
		orderNumber: domain.NewOrderNumber,
	}
}

// Products returns the catalog entries available to the storefront.
func (s *CheckoutService) Products() []domain.Product {
	return s.catalog.Products()
}

// CreateSession starts a new checkout session at the cart step.
func (s *CheckoutService) CreateSession(ctx context.Context) (*domain.CheckoutSession, error) {
	now := s.now()
	session := &domain.CheckoutSession{
		ID:            uuid.New().String(),
		Step:          domain.StepCart,
		PaymentMethod: domain.MethodCreditCard,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("session_id", session.ID),
	)

	return session, nil
}

// GetSession retrieves a checkout session by its ID.
func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

// AddToCart adds one unit of a catalog product to the session's cart. Adding
// a product already in the cart increments its line quantity.
func (s *CheckoutService) AddToCart(ctx context.Context, sessionID, productID string) (*domain.CheckoutSession, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepCart {
		return nil, apperrors.InvalidInput("cart can only be modified during the cart step")
	}

	product, ok := s.catalog.Get(productID)
	if !ok {
		return nil, apperrors.NotFound("product", productID)
	}

	session.Cart.AddItem(product)
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.publishCartUpdated(ctx, session)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
		slog.Int("item_count", session.Cart.ItemCount()),
	)

	return session, nil
}

// RemoveFromCart deletes the cart line for the given product id. Removing an
// id that is not in the cart succeeds without changing anything.
func (s *CheckoutService) RemoveFromCart(ctx context.Context, sessionID, productID string) (*domain.CheckoutSession, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepCart {
		return nil, apperrors.InvalidInput("cart can only be modified during the cart step")
	}

	session.Cart.RemoveItem(productID)
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.publishCartUpdated(ctx, session)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
	)

	return session, nil
}

// AdjustQuantity changes a cart line's quantity by delta. A delta that would
// drive the quantity to zero or below leaves the line unchanged; unknown
// product ids are a silent no-op.
func (s *CheckoutService) AdjustQuantity(ctx context.Context, sessionID, productID string, delta int) (*domain.CheckoutSession, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepCart {
		return nil, apperrors.InvalidInput("cart can only be modified during the cart step")
	}

	session.Cart.AdjustQuantity(productID, delta)
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.publishCartUpdated(ctx, session)

	s.logger.InfoContext(ctx, "cart quantity adjusted",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
		slog.Int("delta", delta),
	)

	return session, nil
}

// ProceedToCheckout advances the session from the cart step to the payment
// step. An empty cart is accepted; rejecting empty-cart checkout is a
// presentation concern, not enforced here.
func (s *CheckoutService) ProceedToCheckout(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepCart {
		return nil, apperrors.InvalidInput("checkout can only be requested from the cart step")
	}

	session.Step = domain.StepPayment
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout requested",
		slog.String("session_id", session.ID),
		slog.Int("item_count", session.Cart.ItemCount()),
	)

	return session, nil
}

// BackToCart returns the session from the payment step to the cart step.
// The cart is retained untouched.
func (s *CheckoutService) BackToCart(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepPayment {
		return nil, apperrors.InvalidInput("back to cart is only available from the payment step")
	}

	session.Step = domain.StepCart
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "returned to cart",
		slog.String("session_id", session.ID),
	)

	return session, nil
}

// CompletePayment records the chosen payment method and stamps the order:
// order number, order date, delivery estimate, order lines, and the shipping
// adjustment in force. The session advances to the confirmation step.
func (s *CheckoutService) CompletePayment(ctx context.Context, sessionID, method string) (*domain.CheckoutSession, error) {
	if method == "" {
		return nil, apperrors.InvalidInput("payment method is required")
	}
	if !domain.IsValidPaymentMethod(method) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("payment method must be one of: %v", domain.ValidPaymentMethods()))
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepPayment {
		return nil, apperrors.InvalidInput("payment can only be completed from the payment step")
	}

	now := s.now()
	session.PaymentMethod = method
	session.Order = &domain.Order{
		Number:            s.orderNumber(),
		Items:             domain.OrderLines(session.Cart.Items),
		OrderDate:         now,
		EstimatedDelivery: domain.EstimatedDelivery(now),
		PaymentMethod:     method,
		Shipping:          s.shipping,
	}
	session.Step = domain.StepConfirmation
	session.UpdatedAt = now

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishOrderPlaced(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	ordersPlacedTotal.WithLabelValues(method).Inc()

	summary := session.Order.Summary()
	s.logger.InfoContext(ctx, "payment completed",
		slog.String("session_id", session.ID),
		slog.String("order_number", session.Order.Number),
		slog.String("payment_method", method),
		slog.String("total", summary.Total.StringFixed(2)),
	)

	return session, nil
}

// ContinueShopping resets a confirmed session back to an empty cart step.
func (s *CheckoutService) ContinueShopping(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepConfirmation {
		return nil, apperrors.InvalidInput("continue shopping is only available from the confirmation step")
	}

	session.Reset()
	session.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "session reset for continued shopping",
		slog.String("session_id", session.ID),
	)

	return session, nil
}

// Shipping returns the shipping adjustment policy in force.
func (s *CheckoutService) Shipping() domain.ShippingAdjustment {
	return s.shipping
}

// publishCartUpdated publishes a cart.updated event, logging failures without
// failing the calling operation.
func (s *CheckoutService) publishCartUpdated(ctx context.Context, session *domain.CheckoutSession) {
	if err := s.producer.PublishCartUpdated(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}

// --- Step views ---

// CartView is the data the cart step needs to render.
type CartView struct {
	Items      []domain.LineItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

// PaymentView is the data the payment step needs to render.
type PaymentView struct {
	Lines          []domain.OrderLine        `json:"lines"`
	Summary        domain.Summary            `json:"summary"`
	Shipping       domain.ShippingAdjustment `json:"shipping"`
	Methods        []string                  `json:"methods"`
	SelectedMethod string                    `json:"selected_method"`
}

// SessionView is the step-dependent projection of a session exposed at the
// presentation boundary. Exactly one of Cart, Payment, or Order is set,
// matching the current step.
type SessionView struct {
	SessionID string        `json:"session_id"`
	Step      string        `json:"step"`
	Cart      *CartView     `json:"cart,omitempty"`
	Payment   *PaymentView  `json:"payment,omitempty"`
	Order     *domain.Order `json:"order,omitempty"`
}

// View builds the presentation projection for the session's current step.
func (s *CheckoutService) View(session *domain.CheckoutSession) *SessionView {
	view := &SessionView{
		SessionID: session.ID,
		Step:      session.Step,
	}

	switch session.Step {
	case domain.StepPayment:
		lines := domain.OrderLines(session.Cart.Items)
		view.Payment = &PaymentView{
			Lines:          lines,
			Summary:        domain.ComputeSummary(lines, s.shipping),
			Shipping:       s.shipping,
			Methods:        domain.ValidPaymentMethods(),
			SelectedMethod: session.PaymentMethod,
		}
	case domain.StepConfirmation:
		view.Order = session.Order
	default:
		view.Cart = &CartView{
			Items:      session.Cart.Items,
			ItemCount:  session.Cart.ItemCount(),
			TotalPrice: session.Cart.TotalPrice(),
		}
	}

	return view
}
