package entities

type PaymentEventType string

// PaymentEventCheckoutCompleted is the only event type that drives a state
// transition; everything else is acknowledged and ignored.
const PaymentEventCheckoutCompleted PaymentEventType = "checkout.session.completed"

func (t PaymentEventType) String() string {
	return string(t)
}

// PaymentEvent is a verified notification from the payment processor.
type PaymentEvent struct {
	Type            PaymentEventType
	OrderID         string
	CustomerEmail   string
	CustomerAddress string
}

// CheckoutSession is the external payment-processor resource the customer is
// redirected to.
type CheckoutSession struct {
	OrderID     string
	RedirectURL string
}
