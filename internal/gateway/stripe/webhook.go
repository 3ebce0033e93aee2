package stripe

import (
	"encoding/json"
	"fmt"

	stripesdk "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"figurine/internal/entities"
)

// VerifyWebhook authenticates the raw webhook body against the signature
// header and decodes it into a payment event. The payload must be the exact
// bytes Stripe sent: any re-serialization breaks the signature.
func (g *Gateway) VerifyWebhook(payload []byte, sigHeader string) (entities.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, g.cfg.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	eventType := string(event.Type)
	if eventType != string(entities.PaymentEventCheckoutCompleted) {
		return toDomainEvent(eventType, nil), nil
	}

	var session stripesdk.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return entities.PaymentEvent{}, fmt.Errorf("decode checkout session: %w", err)
	}

	return toDomainEvent(eventType, &session), nil
}
