package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type StopSubscriptionCommand struct {
	SubscriptionID    string
	TerminationReason string
	TerminationDate   time.Time
	Note              *string
	Metadata          shared.Metadata
}

// StopSubscriptionUseCase moves a subscription from ACTIVE to STOPPED,
// recording why and as of when it was terminated.
type StopSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewStopSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *StopSubscriptionUseCase {
	return &StopSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *StopSubscriptionUseCase) Execute(ctx context.Context, cmd StopSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		logGetFailure(uc.logger, "stop", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	if sub.State() != subscription.StateActive {
		err := errors.NewConflictError("stop subscription", "state is "+sub.State().String())
		uc.logger.Errorw("wrong state for stopping",
			"subscription_id", cmd.SubscriptionID,
			"state", sub.State(),
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	state := subscription.StateStopped
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
			Name:  subscription.EventStopped,
			Actor: cmd.Metadata.Actor,
			Notes: cmd.Note,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		logUpdateFailure(uc.logger, "stop", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	uc.logger.Infow("subscription stopped",
		"subscription_id", updated.ID(),
		"actor", cmd.Metadata.Actor,
	)
	return updated, nil
}
