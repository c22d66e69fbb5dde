package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type DeactivateSubscriptionCommand struct {
	SubscriptionID string
	Note           *string
	Metadata       shared.Metadata
}

// DeactivateSubscriptionUseCase moves a subscription to INACTIVE. Unlike the
// other actions it accepts two starting states: a running subscription can be
// deactivated directly, and a stopped one can still be deactivated to hand
// the car back.
type DeactivateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewDeactivateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *DeactivateSubscriptionUseCase {
	return &DeactivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

var deactivatableStates = []subscription.State{
	subscription.StateActive,
	subscription.StateStopped,
}

func (uc *DeactivateSubscriptionUseCase) Execute(ctx context.Context, cmd DeactivateSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "deactivate", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	allowed := false
	for _, s := range deactivatableStates {
		if sub.State() == s {
			allowed = true
			break
		}
	}
	if !allowed {
		err := errors.NewConflictError("deactivate subscription", "state is "+sub.State().String())
		uc.logger.Errorw("wrong state for deactivation",
			"subscription_id", cmd.SubscriptionID,
			"state", sub.State(),
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	state := subscription.StateInactive
	updated, err := uc.subscriptionRepo.Update(ctx, subscription.UpdateInputs{
		ID:           sub.ID(),
		Subscription: subscription.Patch{State: &state},
		Event: subscription.EventInputs{
			Name:  subscription.EventDeactivated,
			Actor: cmd.Metadata.Actor,
			Notes: cmd.Note,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		logUpdateFailure(uc.logger, "deactivate", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	uc.logger.Infow("subscription deactivated",
		"subscription_id", updated.ID(),
		"actor", cmd.Metadata.Actor,
	)
	return updated, nil
}
