package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type ActivateSubscriptionCommand struct {
	SubscriptionID string
	Note           *string
	Metadata       shared.Metadata
}

// ActivateSubscriptionUseCase moves a subscription from CREATED to ACTIVE.
type ActivateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewActivateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, cmd ActivateSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "activate", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	if sub.State() != subscription.StateCreated {
		err := errors.NewConflictError("activate subscription", "state is "+sub.State().String())
		uc.logger.Errorw("wrong state for activation",
			"subscription_id", cmd.SubscriptionID,
			"state", sub.State(),
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	state := subscription.StateActive
	updated, err := uc.subscriptionRepo.Update(ctx, subscription.UpdateInputs{
		ID:           sub.ID(),
		Subscription: subscription.Patch{State: &state},
		Event: subscription.EventInputs{
			Name:  subscription.EventActivated,
			Actor: cmd.Metadata.Actor,
			Notes: cmd.Note,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		logUpdateFailure(uc.logger, "activate", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	uc.logger.Infow("subscription activated",
		"subscription_id", updated.ID(),
		"actor", cmd.Metadata.Actor,
	)
	return updated, nil
}
