package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"carsub/internal/domain/subscription"
	"carsub/internal/infrastructure/persistence/models"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.SubscriptionModel{}, &models.SubscriptionEventModel{})
	require.NoError(t, err)

	return db
}

func newTestRepository(t *testing.T) subscription.Repository {
	return NewSubscriptionRepository(setupTestDB(t), logger.NewLogger())
}

// assertSameProjection compares two projections field by field, comparing
// timestamps as instants so location differences after storage round-trips
// do not matter.
func assertSameProjection(t *testing.T, want, got subscription.Attributes) {
	t.Helper()
	assert.True(t, want.SigningDate.Equal(got.SigningDate), "signing date")
	assert.True(t, want.PreferredHandoverDate.Equal(got.PreferredHandoverDate), "preferred handover date")
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created at")
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated at")
	if assert.Equal(t, want.TerminationDate == nil, got.TerminationDate == nil, "termination date presence") &&
		want.TerminationDate != nil {
		assert.True(t, want.TerminationDate.Equal(*got.TerminationDate), "termination date")
	}

	zero := time.Time{}
	for _, attrs := range []*subscription.Attributes{&want, &got} {
		attrs.SigningDate = zero
		attrs.PreferredHandoverDate = zero
		attrs.CreatedAt = zero
		attrs.UpdatedAt = zero
		attrs.TerminationDate = nil
	}
	assert.Equal(t, want, got)
}

func createInputs(id string) subscription.CreateInputs {
	return subscription.CreateInputs{
		Subscription: subscription.CreateAttributes{
			ID:                    id,
			ContactID:             "contact-1",
			CarID:                 "car-1",
			Type:                  subscription.TypeB2C,
			Term:                  12,
			SigningDate:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			TermType:              subscription.TermTypeFixed,
			Deposit:               50000,
			Amount:                39900,
			MileagePackage:        1000,
			MileagePackageFee:     5000,
			AdditionalMileageFee:  25,
			HandoverFirstName:     "Jane",
			HandoverLastName:      "Doe",
			HandoverHouseNumber:   "12",
			HandoverStreet:        "Main St",
			HandoverCity:          "Berlin",
			HandoverZip:           "10115",
			PreferredHandoverDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		Event: subscription.EventInputs{
			Name:  subscription.EventCreated,
			Actor: "tester",
			Time:  time.Now().UTC(),
		},
	}
}

func TestSubscriptionRepository_Create(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("creates subscription in CREATED state with first event", func(t *testing.T) {
		sub, err := repo.Create(ctx, createInputs("sub-1"))
		require.NoError(t, err)
		assert.Equal(t, "sub-1", sub.ID())
		assert.Equal(t, subscription.StateCreated, sub.State())
		assert.Equal(t, "car-1", sub.CarID())
		assert.False(t, sub.CreatedAt().IsZero())

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
		}, 10, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, subscription.EventCreated, events[0].Name)
		assert.Equal(t, "tester", events[0].Actor)
		require.NotNil(t, events[0].Snapshot)
		assertSameProjection(t, sub.Attributes(), events[0].Snapshot.Attributes())
	})

	t.Run("generates an identifier when none is given", func(t *testing.T) {
		sub, err := repo.Create(ctx, createInputs(""))
		require.NoError(t, err)
		assert.Len(t, sub.ID(), 10)
	})

	t.Run("duplicate identifier yields conflict and no event row", func(t *testing.T) {
		_, err := repo.Create(ctx, createInputs("sub-dup"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, createInputs("sub-dup"))
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
		assert.Contains(t, err.Error(), "Subscription<sub-dup>")

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-dup"},
		}, 10, subscription.SortAscending)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestSubscriptionRepository_ConcurrentCreate(t *testing.T) {
	// A file-backed database gives each goroutine its own connection, so
	// the two creates genuinely race on the unique constraint. The in-memory
	// database used elsewhere cannot, it lives on a single connection.
	path := filepath.Join(t.TempDir(), "carsub.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SubscriptionModel{}, &models.SubscriptionEventModel{}))

	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, createInputs("sub-race"))
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.IsConflictError(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one create wins")
	assert.Equal(t, 1, conflicts, "the loser observes a conflict")

	events, err := repo.ListEvents(ctx, subscription.EventFilters{
		SubscriptionID: []string{"sub-race"},
	}, 10, subscription.SortAscending)
	require.NoError(t, err)
	assert.Len(t, events, 1, "no event row for the losing attempt")
}

func TestSubscriptionRepository_GetByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("round-trips the full projection", func(t *testing.T) {
		created, err := repo.Create(ctx, createInputs("sub-1"))
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		assertSameProjection(t, created.Attributes(), got.Attributes())
	})

	t.Run("unknown identifier yields not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
		assert.Contains(t, err.Error(), "Subscription<missing>")
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies state patch and snapshots the updated projection", func(t *testing.T) {
		repo := newTestRepository(t)
		_, err := repo.Create(ctx, createInputs("sub-1"))
		require.NoError(t, err)

		state := subscription.StateActive
		note := "go"
		updated, err := repo.Update(ctx, subscription.UpdateInputs{
			ID:           "sub-1",
			Subscription: subscription.Patch{State: &state},
			Event: subscription.EventInputs{
				Name:  subscription.EventActivated,
				Actor: "tester",
				Notes: &note,
				Time:  time.Now().UTC(),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, subscription.StateActive, updated.State())

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
			Name:           []subscription.EventName{subscription.EventActivated},
		}, 10, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].Notes)
		assert.Equal(t, "go", *events[0].Notes)
		assert.Equal(t, subscription.StateActive, events[0].Snapshot.State())
	})

	t.Run("sets termination fields together with the state", func(t *testing.T) {
		repo := newTestRepository(t)
		_, err := repo.Create(ctx, createInputs("sub-1"))
		require.NoError(t, err)

		state := subscription.StateCanceled
		reason := "customer request"
		date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		updated, err := repo.Update(ctx, subscription.UpdateInputs{
			ID: "sub-1",
			Subscription: subscription.Patch{
				State:             &state,
				TerminationReason: &reason,
				TerminationDate:   &date,
			},
			Event: subscription.EventInputs{
				Name:  subscription.EventCanceled,
				Actor: "tester",
				Time:  time.Now().UTC(),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, subscription.StateCanceled, updated.State())
		require.NotNil(t, updated.TerminationReason())
		assert.Equal(t, "customer request", *updated.TerminationReason())
		require.NotNil(t, updated.TerminationDate())
		assert.True(t, updated.TerminationDate().Equal(date))

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
			Name:           []subscription.EventName{subscription.EventCanceled},
		}, 10, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].Snapshot.TerminationReason())
		assert.Equal(t, "customer request", *events[0].Snapshot.TerminationReason())
	})

	t.Run("empty patch leaves the projection unchanged but appends an event", func(t *testing.T) {
		repo := newTestRepository(t)
		created, err := repo.Create(ctx, createInputs("sub-1"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, subscription.UpdateInputs{
			ID:           "sub-1",
			Subscription: subscription.Patch{},
			Event: subscription.EventInputs{
				Name:  subscription.EventConfirmationGenerated,
				Actor: "tester",
				Time:  time.Now().UTC(),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, created.State(), updated.State())
		assert.Equal(t, created.ContactID(), updated.ContactID())

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
		}, 10, subscription.SortAscending)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("unknown identifier yields not found and no event row", func(t *testing.T) {
		repo := newTestRepository(t)
		state := subscription.StateActive
		_, err := repo.Update(ctx, subscription.UpdateInputs{
			ID:           "missing",
			Subscription: subscription.Patch{State: &state},
			Event: subscription.EventInputs{
				Name:  subscription.EventActivated,
				Actor: "tester",
				Time:  time.Now().UTC(),
			},
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"missing"},
		}, 10, subscription.SortAscending)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestSubscriptionRepository_AddEvent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("appends an event with the unchanged projection as snapshot", func(t *testing.T) {
		created, err := repo.Create(ctx, createInputs("sub-1"))
		require.NoError(t, err)

		event, err := repo.AddEvent(ctx, subscription.AddEventInputs{
			ID: "sub-1",
			Event: subscription.EventInputs{
				Name:  subscription.EventAgreementGenerated,
				Actor: "doc-service",
				Time:  time.Now().UTC(),
			},
		})
		require.NoError(t, err)
		assert.Len(t, event.ID, 21)
		assert.Equal(t, subscription.EventAgreementGenerated, event.Name)
		assert.Equal(t, "sub-1", event.SubscriptionID)
		require.NotNil(t, event.Snapshot)
		assertSameProjection(t, created.Attributes(), event.Snapshot.Attributes())

		got, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		assertSameProjection(t, created.Attributes(), got.Attributes())
	})

	t.Run("unknown identifier yields not found", func(t *testing.T) {
		_, err := repo.AddEvent(ctx, subscription.AddEventInputs{
			ID: "missing",
			Event: subscription.EventInputs{
				Name:  subscription.EventAgreementGenerated,
				Actor: "doc-service",
				Time:  time.Now().UTC(),
			},
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestSubscriptionRepository_List(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seed := func(id, carID, contactID string, subType subscription.Type, state subscription.State) {
		inputs := createInputs(id)
		inputs.Subscription.CarID = carID
		inputs.Subscription.ContactID = contactID
		inputs.Subscription.Type = subType
		_, err := repo.Create(ctx, inputs)
		require.NoError(t, err)

		if state != subscription.StateCreated {
			_, err = repo.Update(ctx, subscription.UpdateInputs{
				ID:           id,
				Subscription: subscription.Patch{State: &state},
				Event: subscription.EventInputs{
					Name:  subscription.EventActivated,
					Actor: "tester",
					Time:  time.Now().UTC(),
				},
			})
			require.NoError(t, err)
		}
	}

	seed("sub-1", "car-1", "contact-1", subscription.TypeB2C, subscription.StateActive)
	seed("sub-2", "car-1", "contact-2", subscription.TypeB2B, subscription.StateCreated)
	seed("sub-3", "car-2", "contact-1", subscription.TypeB2C, subscription.StateActive)

	t.Run("filters combine with AND", func(t *testing.T) {
		subs, err := repo.List(ctx, subscription.ListFilters{
			State: []subscription.State{subscription.StateActive},
			CarID: []string{"car-1"},
		}, 50, 0)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "sub-1", subs[0].ID())
	})

	t.Run("filter values form an IN set", func(t *testing.T) {
		subs, err := repo.List(ctx, subscription.ListFilters{
			SubscriptionID: []string{"sub-1", "sub-3"},
		}, 50, 0)
		require.NoError(t, err)
		assert.Len(t, subs, 2)
	})

	t.Run("no filters returns everything up to count", func(t *testing.T) {
		subs, err := repo.List(ctx, subscription.ListFilters{}, 50, 0)
		require.NoError(t, err)
		assert.Len(t, subs, 3)
	})

	t.Run("count and offset page through results", func(t *testing.T) {
		subs, err := repo.List(ctx, subscription.ListFilters{}, 2, 0)
		require.NoError(t, err)
		assert.Len(t, subs, 2)

		subs, err = repo.List(ctx, subscription.ListFilters{}, 2, 2)
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("type filter", func(t *testing.T) {
		subs, err := repo.List(ctx, subscription.ListFilters{
			Type: []subscription.Type{subscription.TypeB2B},
		}, 50, 0)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "sub-2", subs[0].ID())
	})
}

func TestSubscriptionRepository_ListEvents(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	inputs := createInputs("sub-1")
	inputs.Event.Time = t0
	_, err := repo.Create(ctx, inputs)
	require.NoError(t, err)

	state := subscription.StateActive
	_, err = repo.Update(ctx, subscription.UpdateInputs{
		ID:           "sub-1",
		Subscription: subscription.Patch{State: &state},
		Event: subscription.EventInputs{
			Name:  subscription.EventActivated,
			Actor: "tester",
			Time:  t0.Add(time.Hour),
		},
	})
	require.NoError(t, err)

	other := createInputs("sub-2")
	other.Event.Time = t0.Add(2 * time.Hour)
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	t.Run("orders ascending by time", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
		}, 50, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, subscription.EventCreated, events[0].Name)
		assert.Equal(t, subscription.EventActivated, events[1].Name)
	})

	t.Run("orders descending by time", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
		}, 50, subscription.SortDescending)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, subscription.EventActivated, events[0].Name)
	})

	t.Run("time bounds are inclusive", func(t *testing.T) {
		from := t0.Add(time.Hour)
		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
			From:           &from,
		}, 50, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, subscription.EventActivated, events[0].Name)

		to := t0
		events, err = repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-1"},
			To:             &to,
		}, 50, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, subscription.EventCreated, events[0].Name)
	})

	t.Run("name filter", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			Name: []subscription.EventName{subscription.EventCreated},
		}, 50, subscription.SortAscending)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("count limits results", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, subscription.EventFilters{}, 1, subscription.SortAscending)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("equal timestamps keep insertion order", func(t *testing.T) {
		inputs := createInputs("sub-3")
		inputs.Event.Time = t0
		_, err := repo.Create(ctx, inputs)
		require.NoError(t, err)

		// Two facts recorded within the same timestamp tick.
		t1 := t0.Add(time.Minute)
		for _, name := range []subscription.EventName{
			subscription.EventAgreementGenerated,
			subscription.EventConfirmationGenerated,
		} {
			_, err := repo.AddEvent(ctx, subscription.AddEventInputs{
				ID: "sub-3",
				Event: subscription.EventInputs{
					Name:  name,
					Actor: "tester",
					Time:  t1,
				},
			})
			require.NoError(t, err)
		}

		events, err := repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-3"},
		}, 50, subscription.SortAscending)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, subscription.EventCreated, events[0].Name)
		assert.Equal(t, subscription.EventAgreementGenerated, events[1].Name)
		assert.Equal(t, subscription.EventConfirmationGenerated, events[2].Name)

		events, err = repo.ListEvents(ctx, subscription.EventFilters{
			SubscriptionID: []string{"sub-3"},
		}, 50, subscription.SortDescending)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, subscription.EventConfirmationGenerated, events[0].Name)
		assert.Equal(t, subscription.EventAgreementGenerated, events[1].Name)
		assert.Equal(t, subscription.EventCreated, events[2].Name)
	})
}
