package orderfile

import (
	"figurine/internal/entities"
)

func ToDomain(o *OrderFile) *entities.Order {
	if o == nil {
		return nil
	}

	artifacts := make([]string, len(o.Artifacts))
	copy(artifacts, o.Artifacts)

	return &entities.Order{
		ID:              o.ID,
		Status:          entities.OrderStatusType(o.Status),
		Artifacts:       artifacts,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		CreatedAt:       o.CreatedAt,
	}
}

func FromDomain(order *entities.Order) *OrderFile {
	if order == nil {
		return nil
	}

	artifacts := make([]string, len(order.Artifacts))
	copy(artifacts, order.Artifacts)

	return &OrderFile{
		ID:              order.ID,
		Status:          order.Status.String(),
		Artifacts:       artifacts,
		CustomerEmail:   order.CustomerEmail,
		CustomerAddress: order.CustomerAddress,
		CreatedAt:       order.CreatedAt,
	}
}
