package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type RecordDocumentGeneratedCommand struct {
	SubscriptionID string
	EventName      subscription.EventName
	Note           *string
	Metadata       shared.Metadata
}

// RecordDocumentGeneratedUseCase appends a document-generation fact to the
// event log without touching the projection. Only the two document event
// names are accepted.
type RecordDocumentGeneratedUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewRecordDocumentGeneratedUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *RecordDocumentGeneratedUseCase {
	return &RecordDocumentGeneratedUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *RecordDocumentGeneratedUseCase) Execute(ctx context.Context, cmd RecordDocumentGeneratedCommand) (*subscription.Event, error) {
	if cmd.EventName != subscription.EventAgreementGenerated &&
		cmd.EventName != subscription.EventConfirmationGenerated {
		return nil, errors.NewInvalidInputError("eventName", "not a document event")
	}

	event, err := uc.subscriptionRepo.AddEvent(ctx, subscription.AddEventInputs{
		ID: cmd.SubscriptionID,
		Event: subscription.EventInputs{
			Name:  cmd.EventName,
			Actor: cmd.Metadata.Actor,
			Notes: cmd.Note,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		logGetFailure(uc.logger, "record-document", cmd.SubscriptionID, cmd.Metadata, err)
		return nil, err
	}

	uc.logger.Infow("document event recorded",
		"subscription_id", cmd.SubscriptionID,
		"event_name", cmd.EventName,
		"actor", cmd.Metadata.Actor,
	)
	return event, nil
}
