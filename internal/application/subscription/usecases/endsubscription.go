package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type EndSubscriptionCommand struct {
	SubscriptionID string
	Note           *string
	Metadata       shared.Metadata
}

// EndSubscriptionUseCase moves a subscription from INACTIVE to its final
// ENDED state.
type EndSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewEndSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *EndSubscriptionUseCase {
	return &EndSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *EndSubscriptionUseCase) Execute(ctx context.Context, cmd EndSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "end", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	if sub.State() != subscription.StateInactive {
		err := errors.NewConflictError("end subscription", "state is "+sub.State().String())
		uc.logger.Errorw("wrong state for ending",
			"subscription_id", cmd.SubscriptionID,
			"state", sub.State(),
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	state := subscription.StateEnded
	updated, err := uc.subscriptionRepo.Update(ctx, subscription.UpdateInputs{
		ID:           sub.ID(),
		Subscription: subscription.Patch{State: &state},
		Event: subscription.EventInputs{
			Name:  subscription.EventEnded,
			Actor: cmd.Metadata.Actor,
			Notes: cmd.Note,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		logUpdateFailure(uc.logger, "end", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	uc.logger.Infow("subscription ended",
		"subscription_id", updated.ID(),
		"actor", cmd.Metadata.Actor,
	)
	return updated, nil
}
