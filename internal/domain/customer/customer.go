// Package customer defines the customer read model consumed during
// subscription creation, backed by the external customer service.
package customer

import (
	"context"
	"time"

	"carsub/internal/domain/shared"
)

// VerificationState is the outcome of an internal verification decision.
type VerificationState string

const (
	VerificationApproved VerificationState = "approved"
	VerificationRejected VerificationState = "rejected"
)

// Customer is the profile returned by the customer service. The two internal
// verification decisions gate non-B2B subscription creation.
type Customer struct {
	ID                             string
	FirstName                      string
	LastName                       string
	DateOfBirth                    time.Time
	Street                         string
	City                           string
	Zip                            string
	InternalVerificationDecisionDL VerificationState
	InternalVerificationDecisionID VerificationState
}

// IsInternallyVerified reports whether both internal verification decisions
// are approved.
func (c Customer) IsInternallyVerified() bool {
	return c.InternalVerificationDecisionDL == VerificationApproved &&
		c.InternalVerificationDecisionID == VerificationApproved
}

// Gateway looks up customers in the external customer service.
type Gateway interface {
	// GetByID returns the customer profile or a not found / service
	// unavailable error.
	GetByID(ctx context.Context, id string, md shared.Metadata) (*Customer, error)
}
