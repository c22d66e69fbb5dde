package usecases

import (
	"context"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/logger"
)

type ListEventsQuery struct {
	Filters  subscription.EventFilters
	Count    int
	Order    subscription.SortOrder
	Metadata shared.Metadata
}

type ListEventsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListEventsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListEventsUseCase {
	return &ListEventsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, q ListEventsQuery) ([]*subscription.Event, error) {
	count := q.Count
	if count <= 0 {
		count = subscription.DefaultListCount
	}
	order := q.Order
	if order == "" {
		order = subscription.SortAscending
	}

	events, err := uc.subscriptionRepo.ListEvents(ctx, q.Filters, count, order)
	if err != nil {
		uc.logger.Errorw("failed to list subscription events",
			"error", err,
			"actor", q.Metadata.Actor,
			"request_id", q.Metadata.RequestID,
		)
		return nil, err
	}
	return events, nil
}
