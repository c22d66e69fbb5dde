package usecases

import (
	"context"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/logger"
)

type ListPossibleTransitionsQuery struct {
	SubscriptionID string
	Metadata       shared.Metadata
}

// ListPossibleTransitionsUseCase returns the legal next states for a
// subscription's current state. Pure lookup, no side effects.
type ListPossibleTransitionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListPossibleTransitionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListPossibleTransitionsUseCase {
	return &ListPossibleTransitionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListPossibleTransitionsUseCase) Execute(ctx context.Context, q ListPossibleTransitionsQuery) ([]subscription.State, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, q.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "list-possible-transitions", q.SubscriptionID, q.Metadata, err)
		return nil, err
	}
	return sub.State().PossibleTransitions(), nil
}
