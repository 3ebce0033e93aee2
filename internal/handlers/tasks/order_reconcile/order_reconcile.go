package order_reconcile

import (
	"context"
	"time"

	"figurine/internal/entities"
	"figurine/pkg/logger"
)

type Service interface {
	ReconciliationReport(ctx context.Context, staleAfter time.Duration) (entities.ReconciliationReport, error)
}

type OrderReconcile struct {
	log        logger.Logger
	service    Service
	interval   time.Duration
	staleAfter time.Duration
}

func NewOrderReconcile(log logger.Logger, service Service, interval, staleAfter time.Duration) *OrderReconcile {
	return &OrderReconcile{
		log:        log,
		service:    service,
		interval:   interval,
		staleAfter: staleAfter,
	}
}

func (o *OrderReconcile) TTL() time.Duration {
	return o.interval
}

func (o *OrderReconcile) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	report, err := o.service.ReconciliationReport(ctxWithTimeout, o.staleAfter)
	if err != nil {
		return err
	}

	FulfillmentFailedOrders.Set(float64(report.FulfillmentFailed))
	StaleCreatedOrders.Set(float64(report.StaleCreated))

	if report.FulfillmentFailed > 0 || report.StaleCreated > 0 {
		o.log.With(
			logger.NewField("fulfillment_failed", report.FulfillmentFailed),
			logger.NewField("stale_created", report.StaleCreated),
		).Warn("orders need operator attention")
	}

	return nil
}

func (o *OrderReconcile) Info() string {
	return "order reconcile"
}
