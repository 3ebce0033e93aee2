package stripe

import (
	"context"
	"errors"
	"fmt"
	"time"

	stripesdk "github.com/stripe/stripe-go/v76"

	"figurine/internal/entities"
)

const (
	serviceName = "stripe"
)

type Config struct {
	WebhookSecret     string
	UnitPrice         int64
	Currency          string
	ShippingCountries []string
	SuccessURL        string
	CancelURL         string
}

type Gateway struct {
	sessions sessionClient
	cfg      Config
}

func New(sessions sessionClient, cfg Config) *Gateway {
	return &Gateway{
		sessions: sessions,
		cfg:      cfg,
	}
}

// CreateSession opens a hosted checkout page for the order. The order id
// travels in the session metadata and comes back on the completion webhook.
// Single attempt: a repeated call would mint a second live checkout session
// for the same order, so a failure surfaces to the caller instead.
func (g *Gateway) CreateSession(ctx context.Context, order entities.Order) (*entities.CheckoutSession, error) {
	params := newSessionParams(order, g.cfg)
	params.Params.Context = ctx

	var session *stripesdk.CheckoutSession

	err := g.executeWithMetrics(ctx, "CreateCheckoutSession", func(ctx context.Context) error {
		var err error
		session, err = g.sessions.New(params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gateway stripe, create session: %s: %w", order.ID, err)
	}

	return &entities.CheckoutSession{
		OrderID:     order.ID,
		RedirectURL: session.URL,
	}, nil
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	start := time.Now()

	err := fn(ctx)

	statusCode := getStatusCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, statusCode).Observe(time.Since(start).Seconds())

	return err
}

func getStatusCode(err error) string {
	if err == nil {
		return "200"
	}

	var stripeErr *stripesdk.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode != 0 {
		return fmt.Sprintf("%d", stripeErr.HTTPStatusCode)
	}
	return "unknown"
}
