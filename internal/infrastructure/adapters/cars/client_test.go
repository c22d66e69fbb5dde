package cars

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carsub/internal/domain/shared"
	"carsub/internal/shared/config"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.CarsConfig{
		BaseURL:        serverURL,
		APIKey:         "secret",
		TimeoutSeconds: 5,
	}, logger.NewLogger())
}

func testMetadata() shared.Metadata {
	return shared.Metadata{RequestID: "req-1", Actor: "tester"}
}

func TestConfirmReservation_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/car_reservations/token-1/confirmations", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "req-1", r.Header.Get("x-request-id"))
		assert.Equal(t, "tester", r.Header.Get("x-actor"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"car-1","oem":"VW","model":"ID.3","external_product_id":"p-1","fuel_type":"electric"}}`))
	}))
	defer server.Close()

	carID, err := newTestClient(server.URL).ConfirmReservation(context.Background(), "token-1", testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "car-1", carID)
}

func TestConfirmReservation_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"404 is not found", http.StatusNotFound, errors.IsNotFoundError},
		{"409 is conflict", http.StatusConflict, errors.IsConflictError},
		{"403 is forbidden", http.StatusForbidden, errors.IsForbiddenError},
		{"500 is service unavailable", http.StatusInternalServerError, errors.IsServiceUnavailableError},
		{"502 is service unavailable", http.StatusBadGateway, errors.IsServiceUnavailableError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"upstream says no"}`))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).ConfirmReservation(context.Background(), "token-1", testMetadata())
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestConfirmReservation_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).ConfirmReservation(context.Background(), "token-1", testMetadata())
	require.Error(t, err)
	assert.False(t, errors.IsAppError(err))
}
