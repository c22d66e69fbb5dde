package subscription

import (
	"context"
	"time"
)

// Patch is a sparse update of the mutable subscription fields. Nil fields are
// left untouched by the repository; there is no way to clear a field back to
// NULL through a patch.
type Patch struct {
	State             *State
	TerminationReason *string
	TerminationDate   *time.Time
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p.State == nil && p.TerminationReason == nil && p.TerminationDate == nil
}

// CreateInputs carries everything needed to persist a new subscription
// together with its first event.
type CreateInputs struct {
	Subscription CreateAttributes
	Event        EventInputs
}

// UpdateInputs carries a sparse patch plus the event recording it.
type UpdateInputs struct {
	ID           string
	Subscription Patch
	Event        EventInputs
}

// AddEventInputs records a fact about a subscription without changing it.
type AddEventInputs struct {
	ID    string
	Event EventInputs
}

// ListFilters are independent optional IN-set filters over subscriptions.
// Nil or empty slices impose no constraint; present filters combine with AND.
type ListFilters struct {
	State          []State
	CarID          []string
	ContactID      []string
	SubscriptionID []string
	Type           []Type
}

// EventFilters narrow an event listing. From and To are inclusive bounds.
type EventFilters struct {
	SubscriptionID []string
	Name           []EventName
	From           *time.Time
	To             *time.Time
}

const (
	DefaultListCount  = 50
	DefaultListOffset = 0
)

// Repository is the event-sourced persistence port for subscriptions. Every
// write keeps the current projection and the append-only event log consistent
// within a single transaction.
type Repository interface {
	// Create persists a new subscription in state CREATED and appends the
	// given event with the fresh projection as its snapshot. A duplicate
	// identifier yields a conflict error naming the subscription ID.
	Create(ctx context.Context, inputs CreateInputs) (*Subscription, error)

	// GetByID returns the current projection or a not found error.
	GetByID(ctx context.Context, id string) (*Subscription, error)

	// Update applies a sparse patch to the projection, reads back the full
	// updated row and appends an event snapshotting it. Unknown IDs yield a
	// not found error.
	Update(ctx context.Context, inputs UpdateInputs) (*Subscription, error)

	// AddEvent appends an event whose snapshot is the current, unchanged
	// projection. Unknown IDs yield a not found error.
	AddEvent(ctx context.Context, inputs AddEventInputs) (*Event, error)

	// List returns subscriptions matching the filters in stable insertion
	// order.
	List(ctx context.Context, filters ListFilters, count, offset int) ([]*Subscription, error)

	// ListEvents returns events matching the filters ordered by event time.
	ListEvents(ctx context.Context, filters EventFilters, count int, order SortOrder) ([]*Event, error)
}
