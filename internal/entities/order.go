package entities

import "time"

// Order tracks one customer's purchase of generated artifacts through to
// fulfillment. ID, Artifacts and CreatedAt are fixed at creation; email,
// address and status change only on the paid transition.
type Order struct {
	ID              string
	Status          OrderStatusType
	Artifacts       []string
	CustomerEmail   string
	CustomerAddress string
	CreatedAt       time.Time
}

type OrderStatusType string

const (
	OrderCreated           OrderStatusType = "created"
	OrderPaid              OrderStatusType = "paid"
	OrderFulfillmentFailed OrderStatusType = "fulfillment_failed"
)

func (s OrderStatusType) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are defined for the status.
func (s OrderStatusType) Terminal() bool {
	return s == OrderPaid || s == OrderFulfillmentFailed
}

// ReconciliationReport summarizes orders that need operator attention.
type ReconciliationReport struct {
	FulfillmentFailed int
	StaleCreated      int
}
