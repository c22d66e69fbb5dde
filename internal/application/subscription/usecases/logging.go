package usecases

import (
	"carsub/internal/domain/shared"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

// logGetFailure logs a failed projection fetch. Missing subscriptions are
// expected during normal operation and only logged at info level.
func logGetFailure(l logger.Interface, action, id string, md shared.Metadata, err error) {
	if errors.IsNotFoundError(err) {
		l.Infow("subscription not found",
			"action", action,
			"subscription_id", id,
			"actor", md.Actor,
			"request_id", md.RequestID,
		)
		return
	}
	l.Errorw("failed to get subscription",
		"action", action,
		"subscription_id", id,
		"actor", md.Actor,
		"request_id", md.RequestID,
		"error", err,
	)
}

func logUpdateFailure(l logger.Interface, action, id string, md shared.Metadata, err error) {
	l.Errorw("failed to update subscription",
		"action", action,
		"subscription_id", id,
		"actor", md.Actor,
		"request_id", md.RequestID,
		"error", err,
	)
}
