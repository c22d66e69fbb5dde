package subscription

import "time"

// EventName identifies the kind of fact recorded in the event log.
type EventName string

const (
	EventCreated               EventName = "subscription_created"
	EventActivated             EventName = "subscription_activated"
	EventCanceled              EventName = "subscription_canceled"
	EventStopped               EventName = "subscription_stopped"
	EventDeactivated           EventName = "subscription_deactivated"
	EventEnded                 EventName = "subscription_ended"
	EventAgreementGenerated    EventName = "holder_agreement_generated"
	EventConfirmationGenerated EventName = "subscription_confirmation_generated"
)

var ValidEventNames = map[EventName]bool{
	EventCreated:               true,
	EventActivated:             true,
	EventCanceled:              true,
	EventStopped:               true,
	EventDeactivated:           true,
	EventEnded:                 true,
	EventAgreementGenerated:    true,
	EventConfirmationGenerated: true,
}

func (n EventName) String() string {
	return string(n)
}

func (n EventName) Valid() bool {
	return ValidEventNames[n]
}

// Event is an immutable, append-only fact about a subscription. Snapshot is
// the full projection as committed in the same transaction that recorded the
// event.
type Event struct {
	ID             string
	Name           EventName
	Actor          string
	Notes          *string
	Time           time.Time
	Snapshot       *Subscription
	SubscriptionID string
}

// EventInputs carries the caller-supplied part of a new event. ID, snapshot
// and owning subscription are filled in by the repository.
type EventInputs struct {
	Name  EventName
	Actor string
	Notes *string
	Time  time.Time
}
