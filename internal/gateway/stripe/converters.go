package stripe

import (
	"fmt"
	"strings"

	stripesdk "github.com/stripe/stripe-go/v76"

	"figurine/internal/entities"
)

const orderIDMetadataKey = "order_id"

func newSessionParams(order entities.Order, cfg Config) *stripesdk.CheckoutSessionParams {
	lineItems := make([]*stripesdk.CheckoutSessionLineItemParams, 0, len(order.Artifacts))
	for _, artifact := range order.Artifacts {
		lineItems = append(lineItems, &stripesdk.CheckoutSessionLineItemParams{
			PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripesdk.String(cfg.Currency),
				UnitAmount: stripesdk.Int64(cfg.UnitPrice),
				ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripesdk.String(fmt.Sprintf("Action figure %s", artifact)),
				},
			},
			Quantity: stripesdk.Int64(1),
		})
	}

	params := &stripesdk.CheckoutSessionParams{
		Mode:       stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripesdk.String(cfg.SuccessURL),
		CancelURL:  stripesdk.String(cfg.CancelURL),
		ShippingAddressCollection: &stripesdk.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripesdk.StringSlice(cfg.ShippingCountries),
		},
	}
	params.AddMetadata(orderIDMetadataKey, order.ID)

	return params
}

func toDomainEvent(eventType string, session *stripesdk.CheckoutSession) entities.PaymentEvent {
	event := entities.PaymentEvent{
		Type: entities.PaymentEventType(eventType),
	}
	if session == nil {
		return event
	}

	event.OrderID = session.Metadata[orderIDMetadataKey]
	if session.CustomerDetails != nil {
		event.CustomerEmail = session.CustomerDetails.Email
	}
	event.CustomerAddress = formatAddress(session.ShippingDetails)

	return event
}

func formatAddress(details *stripesdk.ShippingDetails) string {
	if details == nil || details.Address == nil {
		return ""
	}
	addr := details.Address

	parts := make([]string, 0, 6)
	for _, part := range []string{addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
