package dto

import "time"

// SubscriptionDTO is the wire representation of a subscription projection.
type SubscriptionDTO struct {
	ID                    string     `json:"id"`
	State                 string     `json:"state"`
	ContactID             string     `json:"contactId"`
	CarID                 string     `json:"carId"`
	Type                  string     `json:"type"`
	Term                  int        `json:"term"`
	SigningDate           time.Time  `json:"signingDate"`
	TermType              string     `json:"termType"`
	Deposit               int64      `json:"deposit"`
	Amount                int64      `json:"amount"`
	MileagePackage        int        `json:"mileagePackage"`
	MileagePackageFee     int64      `json:"mileagePackageFee"`
	AdditionalMileageFee  int64      `json:"additionalMileageFee"`
	HandoverFirstName     string     `json:"handoverFirstName"`
	HandoverLastName      string     `json:"handoverLastName"`
	HandoverHouseNumber   string     `json:"handoverHouseNumber"`
	HandoverStreet        string     `json:"handoverStreet"`
	HandoverCity          string     `json:"handoverCity"`
	HandoverZip           string     `json:"handoverZip"`
	HandoverAddressExtra  *string    `json:"handoverAddressExtra,omitempty"`
	PreferredHandoverDate time.Time  `json:"preferredHandoverDate"`
	TerminationReason     *string    `json:"terminationReason,omitempty"`
	TerminationDate       *time.Time `json:"terminationDate,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// SubscriptionEventDTO is the wire representation of an event log entry.
type SubscriptionEventDTO struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Actor          string           `json:"actor"`
	Notes          *string          `json:"notes,omitempty"`
	Time           time.Time        `json:"time"`
	Snapshot       *SubscriptionDTO `json:"snapshot,omitempty"`
	SubscriptionID string           `json:"subscriptionId"`
}
