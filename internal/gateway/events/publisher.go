package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"figurine/internal/entities"
)

type orderPaidEvent struct {
	OrderID         string    `json:"order_id"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerAddress string    `json:"customer_address"`
	Artifacts       []string  `json:"artifacts"`
	PaidAt          time.Time `json:"paid_at"`
}

// Publisher streams paid-order events to the analytics topic.
type Publisher struct {
	producer producer
	topic    string
	now      func() time.Time
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

func (p *Publisher) PublishOrderPaid(ctx context.Context, order entities.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("gateway events, publish order paid: %s: %w", order.ID, err)
	}

	event := orderPaidEvent{
		OrderID:         order.ID,
		CustomerEmail:   order.CustomerEmail,
		CustomerAddress: order.CustomerAddress,
		Artifacts:       order.Artifacts,
		PaidAt:          p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("gateway events, marshal order paid: %s: %w", order.ID, err)
	}

	if err := p.producer.SendMessage(p.topic, []byte(order.ID), payload); err != nil {
		return fmt.Errorf("gateway events, publish order paid: %s: %w", order.ID, err)
	}

	return nil
}
