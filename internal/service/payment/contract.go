//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_test
package payment

import (
	"context"

	"figurine/internal/entities"
	"figurine/pkg/logger"
)

type Repository interface {
	Update(ctx context.Context, id string, fn func(entities.Order) (entities.Order, error)) (*entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
}

type Notifier interface {
	SendOrder(ctx context.Context, order entities.Order) error
}

// EventPublisher pushes paid-order events to the analytics stream. A nil
// publisher disables publishing.
type EventPublisher interface {
	PublishOrderPaid(ctx context.Context, order entities.Order) error
}

type serviceLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
