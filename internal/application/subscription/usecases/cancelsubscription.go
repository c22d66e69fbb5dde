package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID    string
	TerminationReason string
	TerminationDate   time.Time
	Note              *string
	Metadata          shared.Metadata
}

// CancelSubscriptionUseCase moves a subscription from CREATED to CANCELED,
// recording why and as of when it was terminated.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "cancel", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	if sub.State() != subscription.StateCreated {
		err := errors.NewConflictError("cancel subscription", "state is "+sub.State().String())
		uc.logger.Errorw("wrong state for cancellation",
			"subscription_id", cmd.SubscriptionID,
			"state", sub.State(),
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	state := subscription.StateCanceled
	reason := cmd.TerminationReason
	date := cmd.TerminationDate
	updated, err := uc.subscriptionRepo.Update(ctx, subscription.UpdateInputs{
		ID: sub.ID(),
		Subscription: subscription.Patch{
			State:             &state,
			TerminationReason: &reason,
			TerminationDate:   &date,
		},
		Event: subscription.EventInputs{
			Name:  subscription.EventCanceled,
			Actor: cmd.Metadata.Actor,
			Notes: cmd.Note,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		logUpdateFailure(uc.logger, "cancel", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	uc.logger.Infow("subscription canceled",
		"subscription_id", updated.ID(),
		"actor", cmd.Metadata.Actor,
	)
	return updated, nil
}
