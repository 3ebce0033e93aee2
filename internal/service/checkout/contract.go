//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=checkout_test
package checkout

import (
	"context"

	"figurine/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) error
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, order entities.Order) (*entities.CheckoutSession, error)
}
