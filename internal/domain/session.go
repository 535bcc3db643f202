package domain

import "time"

// Checkout step constants. A session moves cart -> payment -> confirmation,
// with payment -> cart as the only backward transition and a full reset from
// confirmation back to cart.
const (
	StepCart         = "cart"
	StepPayment      = "payment"
	StepConfirmation = "confirmation"
)

// Payment method constants.
const (
	MethodCreditCard = "creditcard"
	MethodPayPal     = "paypal"
	MethodApplePay   = "applepay"
)

// CheckoutSession is the aggregate root for one in-progress checkout: the
// current step, the cart, the selected payment method, and the order once
// payment has completed. A session is owned by a single user interaction;
// no two sessions share a cart.
type CheckoutSession struct {
	ID            string    `json:"id"`
	Step          string    `json:"step"`
	Cart          Cart      `json:"cart"`
	PaymentMethod string    `json:"payment_method"`
	Order         *Order    `json:"order,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Reset returns the session to a fresh cart step, clearing the cart, the
// order, and the payment-method selection.
func (s *CheckoutSession) Reset() {
	s.Step = StepCart
	s.Cart = Cart{}
	s.Order = nil
	s.PaymentMethod = MethodCreditCard
}

// ValidSteps returns the set of valid checkout steps.
func ValidSteps() []string {
	return []string{StepCart, StepPayment, StepConfirmation}
}

// IsValidStep checks whether the given step string is a valid checkout step.
func IsValidStep(step string) bool {
	for _, s := range ValidSteps() {
		if s == step {
			return true
		}
	}
	return false
}

// ValidPaymentMethods returns the set of accepted payment methods.
func ValidPaymentMethods() []string {
	return []string{MethodCreditCard, MethodPayPal, MethodApplePay}
}

// IsValidPaymentMethod checks whether the given method is accepted.
func IsValidPaymentMethod(method string) bool {
	for _, m := range ValidPaymentMethods() {
		if m == method {
			return true
		}
	}
	return false
}
