// Package cars is the HTTP client for the external car reservation service.
package cars

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"carsub/internal/domain/car"
	"carsub/internal/domain/shared"
	"carsub/internal/shared/config"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type carRecord struct {
	ID                string `json:"id"`
	OEM               string `json:"oem"`
	Model             string `json:"model"`
	ExternalProductID string `json:"external_product_id"`
	FuelType          string `json:"fuel_type"`
	RegistrationData  *struct {
		LicensePlate *string `json:"license_plate"`
	} `json:"registration_data"`
}

type confirmReservationResponse struct {
	Data carRecord `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client confirms car reservations against the car service REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg *config.CarsConfig, logger logger.Interface) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// ConfirmReservation consumes a reservation token and returns the reserved
// car's identifier.
func (c *Client) ConfirmReservation(ctx context.Context, token string, md shared.Metadata) (string, error) {
	endpoint := fmt.Sprintf("%s/car_reservations/%s/confirmations", c.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build car reservation request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-request-id", md.RequestID)
	req.Header.Set("x-actor", md.Actor)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("car service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return "", errors.NewNotFoundError(token)
		case http.StatusConflict:
			return "", errors.NewConflictError(errBody.Message)
		case http.StatusForbidden:
			return "", errors.NewForbiddenError(errBody.Message)
		default:
			c.logger.Errorw("car service error",
				"status", resp.StatusCode,
				"actor", md.Actor,
				"request_id", md.RequestID,
			)
			return "", errors.NewServiceUnavailableError("cars")
		}
	}

	var body confirmReservationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode car service response: %w", err)
	}

	reserved := mapToCar(body.Data)
	c.logger.Debugw("car reservation confirmed",
		"car_id", reserved.ID,
		"model", reserved.Model,
		"request_id", md.RequestID,
	)
	return reserved.ID, nil
}

// mapToCar converts a car service record to the domain representation.
func mapToCar(record carRecord) car.Car {
	mapped := car.Car{
		ID:                record.ID,
		OEM:               record.OEM,
		Model:             record.Model,
		FuelType:          car.FuelType(record.FuelType),
		ExternalProductID: record.ExternalProductID,
	}
	if record.RegistrationData != nil {
		mapped.LicensePlate = record.RegistrationData.LicensePlate
	}
	return mapped
}
