package orderpg

import (
	"github.com/AlekSi/pointer"

	"figurine/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:              o.ID,
		Status:          entities.OrderStatusType(o.Status),
		Artifacts:       o.Artifacts,
		CustomerEmail:   pointer.GetString(o.CustomerEmail),
		CustomerAddress: pointer.GetString(o.CustomerAddress),
		CreatedAt:       o.CreatedAt,
	}
}

func FromDomain(order *entities.Order) *OrderDB {
	if order == nil {
		return nil
	}

	orderDB := &OrderDB{
		ID:        order.ID,
		Status:    order.Status.String(),
		Artifacts: order.Artifacts,
		CreatedAt: order.CreatedAt,
	}

	if order.CustomerEmail != "" {
		orderDB.CustomerEmail = pointer.ToString(order.CustomerEmail)
	}
	if order.CustomerAddress != "" {
		orderDB.CustomerAddress = pointer.ToString(order.CustomerAddress)
	}

	return orderDB
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}
