package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"figurine/internal/entities"
	"figurine/internal/repository"
	"figurine/pkg/logger"
)

type Service struct {
	repository Repository
	notifier   Notifier
	publisher  EventPublisher
	log        serviceLogger
}

func New(log serviceLogger, repository Repository, notifier Notifier, publisher EventPublisher) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
		publisher:  publisher,
		log:        log.With(),
	}
}

// ProcessEvent drives the order state machine for one verified payment
// event. The terminal-state check and the paid transition run inside a
// single atomic Update, so redelivered events hit the no-op branch and never
// trigger a second fulfillment. The notifier fires only after the paid write
// has committed; a notifier failure is recorded as fulfillment_failed but
// never reverts the paid status.
func (s *Service) ProcessEvent(ctx context.Context, event entities.PaymentEvent) error {
	if event.Type != entities.PaymentEventCheckoutCompleted {
		// signature already checked; anything we do not handle is acked
		s.log.Debug("ignoring payment event",
			logger.NewField("type", event.Type.String()),
		)
		return nil
	}

	var transitioned bool
	updated, err := s.repository.Update(ctx, event.OrderID, func(order entities.Order) (entities.Order, error) {
		if order.Status.Terminal() {
			return order, nil
		}

		order.Status = entities.OrderPaid
		order.CustomerEmail = event.CustomerEmail
		order.CustomerAddress = event.CustomerAddress
		transitioned = true
		return order, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			// ack anyway: the processor would retry a non-2xx forever and
			// retries cannot conjure up a missing record
			s.log.Error("payment event for unknown order, manual reconciliation required",
				logger.NewField("order_ID", event.OrderID),
			)
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrUpdateOrder, event.OrderID, err)
	}

	if !transitioned {
		s.log.Info("payment event redelivered for terminal order, skipping",
			logger.NewField("order_ID", updated.ID),
			logger.NewField("status", updated.Status.String()),
		)
		return nil
	}

	if err := s.notifier.SendOrder(ctx, *updated); err != nil {
		s.log.Error("fulfillment notification failed",
			logger.NewField("order_ID", updated.ID),
			logger.NewField("error", err),
		)
		s.recordFulfillmentFailure(ctx, updated.ID)
		return nil
	}

	s.publishPaid(ctx, *updated)
	return nil
}

// ReconciliationReport counts orders stuck in fulfillment_failed and orders
// still awaiting payment past staleAfter. Reporting only; resending is an
// operator action.
func (s *Service) ReconciliationReport(ctx context.Context, staleAfter time.Duration) (entities.ReconciliationReport, error) {
	orders, err := s.repository.List(ctx)
	if err != nil {
		return entities.ReconciliationReport{}, fmt.Errorf("list orders: %w", err)
	}

	staleCutoff := time.Now().UTC().Add(-staleAfter)

	var report entities.ReconciliationReport
	for _, order := range orders {
		switch {
		case order.Status == entities.OrderFulfillmentFailed:
			report.FulfillmentFailed++
		case order.Status == entities.OrderCreated && order.CreatedAt.Before(staleCutoff):
			report.StaleCreated++
		}
	}
	return report, nil
}

func (s *Service) recordFulfillmentFailure(ctx context.Context, orderID string) {
	_, err := s.repository.Update(ctx, orderID, func(order entities.Order) (entities.Order, error) {
		if order.Status != entities.OrderPaid {
			return order, nil
		}
		order.Status = entities.OrderFulfillmentFailed
		return order, nil
	})
	if err != nil {
		s.log.Error("record fulfillment failure",
			logger.NewField("order_ID", orderID),
			logger.NewField("error", err),
		)
	}
}

func (s *Service) publishPaid(ctx context.Context, order entities.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPaid(ctx, order); err != nil {
		// the event stream is supplemental, a broker outage must not
		// surface to the payment processor
		s.log.Warn("publish order paid event",
			logger.NewField("order_ID", order.ID),
			logger.NewField("error", err),
		)
	}
}
