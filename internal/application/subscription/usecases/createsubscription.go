package usecases

import (
	"context"
	"time"

	"carsub/internal/domain/car"
	"carsub/internal/domain/customer"
	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

// CreateSubscriptionCommand carries the creation inputs. CarReservationToken
// is exchanged for a car ID at the car service; the subscription never stores
// the token itself.
type CreateSubscriptionCommand struct {
	Subscription        subscription.CreateAttributes
	CarReservationToken string
	Metadata            shared.Metadata
}

// CreateSubscriptionUseCase verifies the customer, confirms the car
// reservation and persists the new subscription with its first event.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	customerGateway  customer.Gateway
	carGateway       car.Gateway
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	customerGateway customer.Gateway,
	carGateway car.Gateway,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		customerGateway:  customerGateway,
		carGateway:       carGateway,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	if err := cmd.Subscription.Validate(); err != nil {
		uc.logger.Warnw("invalid subscription inputs", "error", err, "actor", cmd.Metadata.Actor)
		return nil, errors.NewValidationError(err.Error())
	}

	// Customer verification must fail before the reservation is confirmed:
	// confirming consumes the token and cannot be rolled back.
	cust, err := uc.customerGateway.GetByID(ctx, cmd.Subscription.ContactID, cmd.Metadata)
	if err != nil {
		uc.logger.Errorw("failed to fetch customer",
			"error", err,
			"contact_id", cmd.Subscription.ContactID,
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, errors.NewInvalidInputError("contactId", "not found")
	}

	if cmd.Subscription.Type != subscription.TypeB2B {
		if !cust.IsInternallyVerified() {
			uc.logger.Errorw("customer not verified",
				"contact_id", cmd.Subscription.ContactID,
				"actor", cmd.Metadata.Actor,
				"request_id", cmd.Metadata.RequestID,
			)
			return nil, errors.NewInvalidInputError("contactId", "customer not verified")
		}
	}

	carID, err := uc.carGateway.ConfirmReservation(ctx, cmd.CarReservationToken, cmd.Metadata)
	if err != nil {
		uc.logger.Errorw("failed to confirm car reservation",
			"error", err,
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	attrs := cmd.Subscription
	attrs.CarID = carID

	sub, err := uc.subscriptionRepo.Create(ctx, subscription.CreateInputs{
		Subscription: attrs,
		Event: subscription.EventInputs{
			Name:  subscription.EventCreated,
			Actor: cmd.Metadata.Actor,
			Time:  time.Now().UTC(),
		},
	})
	if err != nil {
		uc.logger.Errorw("failed to create subscription",
			"error", err,
			"car_id", carID,
			"actor", cmd.Metadata.Actor,
			"request_id", cmd.Metadata.RequestID,
		)
		return nil, err
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"car_id", carID,
		"actor", cmd.Metadata.Actor,
	)
	return sub, nil
}
