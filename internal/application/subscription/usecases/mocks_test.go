package usecases

import (
	"context"
	"testing"
	"time"

	"carsub/internal/domain/customer"
	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/shared/logger"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, inputs subscription.CreateInputs) (*subscription.Subscription, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, inputs subscription.UpdateInputs) (*subscription.Subscription, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockRepository) AddEvent(ctx context.Context, inputs subscription.AddEventInputs) (*subscription.Event, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Event), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filters subscription.ListFilters, count, offset int) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, filters, count, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *mockRepository) ListEvents(ctx context.Context, filters subscription.EventFilters, count int, order subscription.SortOrder) ([]*subscription.Event, error) {
	args := m.Called(ctx, filters, count, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Event), args.Error(1)
}

type mockCustomerGateway struct {
	mock.Mock
}

func (m *mockCustomerGateway) GetByID(ctx context.Context, id string, md shared.Metadata) (*customer.Customer, error) {
	args := m.Called(ctx, id, md)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type mockCarGateway struct {
	mock.Mock
}

func (m *mockCarGateway) ConfirmReservation(ctx context.Context, token string, md shared.Metadata) (string, error) {
	args := m.Called(ctx, token, md)
	return args.String(0), args.Error(1)
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (l noopLogger) With(args ...any) logger.Interface             { return l }
func (l noopLogger) Named(name string) logger.Interface            { return l }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func testSubscription(t *testing.T, id string, state subscription.State) *subscription.Subscription {
	t.Helper()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sub, err := subscription.Reconstruct(subscription.Attributes{
		ID:                    id,
		State:                 state,
		ContactID:             "contact-1",
		CarID:                 "car-1",
		Type:                  subscription.TypeB2C,
		Term:                  12,
		SigningDate:           now,
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
		PreferredHandoverDate: now.AddDate(0, 0, 14),
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	require.NoError(t, err)
	return sub
}

func testMetadata() shared.Metadata {
	return shared.Metadata{RequestID: "req-1", Actor: "tester"}
}
