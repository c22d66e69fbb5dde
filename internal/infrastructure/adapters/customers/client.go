// Package customers is the HTTP client for the external customer service.
package customers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"carsub/internal/domain/customer"
	"carsub/internal/domain/shared"
	"carsub/internal/shared/config"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/logger"
)

type customerRecord struct {
	ID         string `json:"id"`
	Properties struct {
		Address                        string `json:"address"`
		City                           string `json:"city"`
		DateOfBirth                    string `json:"date_of_birth"`
		Firstname                      string `json:"firstname"`
		Lastname                       string `json:"lastname"`
		Zip                            string `json:"zip"`
		InternalVerificationDecisionDL string `json:"internal_verification_decision_dl"`
		InternalVerificationDecisionID string `json:"internal_verification_decision_id"`
	} `json:"properties"`
}

type getCustomerResponse struct {
	Data customerRecord `json:"data"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client looks up customer profiles in the customer service REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg *config.CustomersConfig, logger logger.Interface) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// GetByID fetches the customer profile holding the verification decisions.
func (c *Client) GetByID(ctx context.Context, id string, md shared.Metadata) (*customer.Customer, error) {
	endpoint := fmt.Sprintf("%s/api/internal/customers/%s/profile", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build customer request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-request-id", md.RequestID)
	req.Header.Set("x-actor", md.Actor)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customer service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("Customer<%s>", id))
		}
		c.logger.Errorw("customer service error",
			"status", resp.StatusCode,
			"actor", md.Actor,
			"request_id", md.RequestID,
		)
		return nil, errors.NewServiceUnavailableError("customers")
	}

	var body getCustomerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode customer service response: %w", err)
	}
	return mapToCustomer(body.Data), nil
}

// Health probes the customer service health endpoint.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/health", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build health request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("customer service health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", errors.NewServiceUnavailableError("customers")
	}

	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode health response: %w", err)
	}
	return body.Message, nil
}

func mapToCustomer(record customerRecord) *customer.Customer {
	dateOfBirth, err := time.Parse("2006-01-02", record.Properties.DateOfBirth)
	if err != nil {
		// The profile date is informational, verification does not depend
		// on it.
		dateOfBirth = time.Time{}
	}
	return &customer.Customer{
		ID:                             record.ID,
		FirstName:                      record.Properties.Firstname,
		LastName:                       record.Properties.Lastname,
		DateOfBirth:                    dateOfBirth,
		Street:                         record.Properties.Address,
		City:                           record.Properties.City,
		Zip:                            record.Properties.Zip,
		InternalVerificationDecisionDL: customer.VerificationState(record.Properties.InternalVerificationDecisionDL),
		InternalVerificationDecisionID: customer.VerificationState(record.Properties.InternalVerificationDecisionID),
	}
}
