//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_webhook_post_test
package payment_webhook_post

import (
	"context"

	"figurine/internal/entities"
	"figurine/pkg/logger"
)

// Authenticator verifies the webhook signature over the literal request
// bytes and decodes the event.
type Authenticator interface {
	VerifyWebhook(payload []byte, sigHeader string) (entities.PaymentEvent, error)
}

type Service interface {
	ProcessEvent(ctx context.Context, event entities.PaymentEvent) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
