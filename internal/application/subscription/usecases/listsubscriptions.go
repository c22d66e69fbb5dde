package usecases

import (
	"context"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/logger"
)

type ListSubscriptionsQuery struct {
	Filters  subscription.ListFilters
	Count    int
	Offset   int
	Metadata shared.Metadata
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, q ListSubscriptionsQuery) ([]*subscription.Subscription, error) {
	count := q.Count
	if count <= 0 {
		count = subscription.DefaultListCount
	}
	offset := q.Offset
	if offset < 0 {
		offset = subscription.DefaultListOffset
	}

	subs, err := uc.subscriptionRepo.List(ctx, q.Filters, count, offset)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions",
			"error", err,
			"actor", q.Metadata.Actor,
			"request_id", q.Metadata.RequestID,
		)
		return nil, err
	}
	return subs, nil
}
