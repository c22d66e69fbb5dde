package usecases

import (
	"context"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	SubscriptionID string
	Metadata       shared.Metadata
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, q GetSubscriptionQuery) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, q.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "get", q.SubscriptionID, q.Metadata, err)
		return nil, err
	}
	return sub, nil
}
