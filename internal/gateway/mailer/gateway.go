package mailer

import (
	"context"
	"fmt"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"figurine/internal/entities"
)

type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	OperatorEmail string
	ArtifactsDir  string
}

// Gateway emails the fulfillment operator about paid orders. There is no
// retry here: a failed send marks the order for manual reconciliation.
type Gateway struct {
	dialer dialer
	cfg    Config
}

func New(cfg Config) *Gateway {
	return &Gateway{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

func (g *Gateway) SendOrder(ctx context.Context, order entities.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("gateway mailer, send order: %s: %w", order.ID, err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", g.cfg.From)
	message.SetHeader("To", g.cfg.OperatorEmail)
	message.SetHeader("Subject", orderSubject(order))
	message.SetBody("text/plain", orderBody(order))

	for _, artifact := range order.Artifacts {
		message.Attach(filepath.Join(g.cfg.ArtifactsDir, artifact))
	}

	if err := g.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("gateway mailer, send order: %s: %w", order.ID, err)
	}

	return nil
}

func orderSubject(order entities.Order) string {
	return fmt.Sprintf("New paid order %s", order.ID)
}

func orderBody(order entities.Order) string {
	return fmt.Sprintf(
		"Order %s has been paid.\n\nCustomer email: %s\nShipping address: %s\nArtifacts: %d attached\n",
		order.ID, order.CustomerEmail, order.CustomerAddress, len(order.Artifacts),
	)
}
