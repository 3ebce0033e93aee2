package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"figurine/internal/entities"
)

type Service struct {
	repository Repository
	gateway    PaymentGateway
}

func New(repository Repository, gateway PaymentGateway) *Service {
	return &Service{
		repository: repository,
		gateway:    gateway,
	}
}

// CreateCheckout persists a new order for the given artifacts and asks the
// payment processor for a checkout session carrying the order id as
// correlation metadata. If the session request fails after the order was
// persisted, the order stays in the created state for manual reconciliation;
// nothing is rolled back.
func (s *Service) CreateCheckout(ctx context.Context, artifacts []string) (*entities.CheckoutSession, error) {
	if len(artifacts) == 0 {
		return nil, ErrNoArtifacts
	}
	for _, artifact := range artifacts {
		if !isValidArtifact(artifact) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArtifact, artifact)
		}
	}

	order := entities.Order{
		ID:        uuid.NewString(),
		Status:    entities.OrderCreated,
		Artifacts: artifacts,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repository.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, order)
	if err != nil {
		// the persisted order stays in created state for reconciliation
		return nil, fmt.Errorf("%w: order %s: %v", ErrPaymentSession, order.ID, err)
	}

	return session, nil
}
