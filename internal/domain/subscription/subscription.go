package subscription

import (
	"fmt"
	"time"
)

// Subscription is the aggregate root for a vehicle subscription contract.
// It is never mutated in place: lifecycle actions go through the repository,
// which returns a fresh projection.
type Subscription struct {
	id                    string
	state                 State
	contactID             string
	carID                 string
	subType               Type
	term                  int
	signingDate           time.Time
	termType              TermType
	deposit               Money
	amount                Money
	mileagePackage        int
	mileagePackageFee     Money
	additionalMileageFee  Money
	handoverFirstName     string
	handoverLastName      string
	handoverHouseNumber   string
	handoverStreet        string
	handoverCity          string
	handoverZip           string
	handoverAddressExtra  *string
	preferredHandoverDate time.Time
	terminationReason     *string
	terminationDate       *time.Time
	createdAt             time.Time
	updatedAt             time.Time
}

// Attributes carries the full field set of a subscription for reconstruction
// from persistence.
type Attributes struct {
	ID                    string
	State                 State
	ContactID             string
	CarID                 string
	Type                  Type
	Term                  int
	SigningDate           time.Time
	TermType              TermType
	Deposit               Money
	Amount                Money
	MileagePackage        int
	MileagePackageFee     Money
	AdditionalMileageFee  Money
	HandoverFirstName     string
	HandoverLastName      string
	HandoverHouseNumber   string
	HandoverStreet        string
	HandoverCity          string
	HandoverZip           string
	HandoverAddressExtra  *string
	PreferredHandoverDate time.Time
	TerminationReason     *string
	TerminationDate       *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CreateAttributes carries the caller-suppliable fields of a new subscription.
// ID is optional; the repository generates one when it is empty. State is not
// part of the inputs, new subscriptions always start in CREATED.
type CreateAttributes struct {
	ID                    string
	ContactID             string
	CarID                 string
	Type                  Type
	Term                  int
	SigningDate           time.Time
	TermType              TermType
	Deposit               Money
	Amount                Money
	MileagePackage        int
	MileagePackageFee     Money
	AdditionalMileageFee  Money
	HandoverFirstName     string
	HandoverLastName      string
	HandoverHouseNumber   string
	HandoverStreet        string
	HandoverCity          string
	HandoverZip           string
	HandoverAddressExtra  *string
	PreferredHandoverDate time.Time
}

// Validate performs domain-level validation of creation inputs.
func (a CreateAttributes) Validate() error {
	if a.ContactID == "" {
		return fmt.Errorf("contact ID is required")
	}
	if !a.Type.Valid() {
		return fmt.Errorf("invalid subscription type: %s", a.Type)
	}
	if !a.TermType.Valid() {
		return fmt.Errorf("invalid term type: %s", a.TermType)
	}
	if a.Term < 0 {
		return fmt.Errorf("term cannot be negative")
	}
	if a.Deposit < 0 || a.Amount < 0 || a.MileagePackageFee < 0 || a.AdditionalMileageFee < 0 {
		return fmt.Errorf("monetary amounts cannot be negative")
	}
	if a.MileagePackage < 0 {
		return fmt.Errorf("mileage package cannot be negative")
	}
	return nil
}

// Reconstruct rebuilds a subscription from persistence.
func Reconstruct(attrs Attributes) (*Subscription, error) {
	if attrs.ID == "" {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if !attrs.State.Valid() {
		return nil, fmt.Errorf("invalid subscription state: %s", attrs.State)
	}
	if !attrs.Type.Valid() {
		return nil, fmt.Errorf("invalid subscription type: %s", attrs.Type)
	}
	if (attrs.TerminationReason == nil) != (attrs.TerminationDate == nil) {
		return nil, fmt.Errorf("termination reason and date must be set together")
	}

	return &Subscription{
		id:                    attrs.ID,
		state:                 attrs.State,
		contactID:             attrs.ContactID,
		carID:                 attrs.CarID,
		subType:               attrs.Type,
		term:                  attrs.Term,
		signingDate:           attrs.SigningDate,
		termType:              attrs.TermType,
		deposit:               attrs.Deposit,
		amount:                attrs.Amount,
		mileagePackage:        attrs.MileagePackage,
		mileagePackageFee:     attrs.MileagePackageFee,
		additionalMileageFee:  attrs.AdditionalMileageFee,
		handoverFirstName:     attrs.HandoverFirstName,
		handoverLastName:      attrs.HandoverLastName,
		handoverHouseNumber:   attrs.HandoverHouseNumber,
		handoverStreet:        attrs.HandoverStreet,
		handoverCity:          attrs.HandoverCity,
		handoverZip:           attrs.HandoverZip,
		handoverAddressExtra:  attrs.HandoverAddressExtra,
		preferredHandoverDate: attrs.PreferredHandoverDate,
		terminationReason:     attrs.TerminationReason,
		terminationDate:       attrs.TerminationDate,
		createdAt:             attrs.CreatedAt,
		updatedAt:             attrs.UpdatedAt,
	}, nil
}

// Attributes returns the full field set of the subscription.
func (s *Subscription) Attributes() Attributes {
	return Attributes{
		ID:                    s.id,
		State:                 s.state,
		ContactID:             s.contactID,
		CarID:                 s.carID,
		Type:                  s.subType,
		Term:                  s.term,
		SigningDate:           s.signingDate,
		TermType:              s.termType,
		Deposit:               s.deposit,
		Amount:                s.amount,
		MileagePackage:        s.mileagePackage,
		MileagePackageFee:     s.mileagePackageFee,
		AdditionalMileageFee:  s.additionalMileageFee,
		HandoverFirstName:     s.handoverFirstName,
		HandoverLastName:      s.handoverLastName,
		HandoverHouseNumber:   s.handoverHouseNumber,
		HandoverStreet:        s.handoverStreet,
		HandoverCity:          s.handoverCity,
		HandoverZip:           s.handoverZip,
		HandoverAddressExtra:  s.handoverAddressExtra,
		PreferredHandoverDate: s.preferredHandoverDate,
		TerminationReason:     s.terminationReason,
		TerminationDate:       s.terminationDate,
		CreatedAt:             s.createdAt,
		UpdatedAt:             s.updatedAt,
	}
}

// ID returns the subscription identifier
func (s *Subscription) ID() string {
	return s.id
}

// State returns the lifecycle state
func (s *Subscription) State() State {
	return s.state
}

// ContactID returns the customer contact identifier
func (s *Subscription) ContactID() string {
	return s.contactID
}

// CarID returns the reserved car identifier
func (s *Subscription) CarID() string {
	return s.carID
}

// Type returns the contract type
func (s *Subscription) Type() Type {
	return s.subType
}

// Term returns the contract term length in months
func (s *Subscription) Term() int {
	return s.term
}

// SigningDate returns when the contract was signed
func (s *Subscription) SigningDate() time.Time {
	return s.signingDate
}

// TermType returns whether the contract is fixed or open ended
func (s *Subscription) TermType() TermType {
	return s.termType
}

// Deposit returns the deposit amount
func (s *Subscription) Deposit() Money {
	return s.deposit
}

// Amount returns the recurring subscription amount
func (s *Subscription) Amount() Money {
	return s.amount
}

// MileagePackage returns the included mileage package
func (s *Subscription) MileagePackage() int {
	return s.mileagePackage
}

// MileagePackageFee returns the mileage package fee
func (s *Subscription) MileagePackageFee() Money {
	return s.mileagePackageFee
}

// AdditionalMileageFee returns the fee per additional mileage unit
func (s *Subscription) AdditionalMileageFee() Money {
	return s.additionalMileageFee
}

// HandoverFirstName returns the handover contact first name
func (s *Subscription) HandoverFirstName() string {
	return s.handoverFirstName
}

// HandoverLastName returns the handover contact last name
func (s *Subscription) HandoverLastName() string {
	return s.handoverLastName
}

// HandoverHouseNumber returns the handover address house number
func (s *Subscription) HandoverHouseNumber() string {
	return s.handoverHouseNumber
}

// HandoverStreet returns the handover address street
func (s *Subscription) HandoverStreet() string {
	return s.handoverStreet
}

// HandoverCity returns the handover address city
func (s *Subscription) HandoverCity() string {
	return s.handoverCity
}

// HandoverZip returns the handover address zip code
func (s *Subscription) HandoverZip() string {
	return s.handoverZip
}

// HandoverAddressExtra returns the optional handover address extra line
func (s *Subscription) HandoverAddressExtra() *string {
	return s.handoverAddressExtra
}

// PreferredHandoverDate returns the preferred handover date
func (s *Subscription) PreferredHandoverDate() time.Time {
	return s.preferredHandoverDate
}

// TerminationReason returns the termination reason, if terminated
func (s *Subscription) TerminationReason() *string {
	return s.terminationReason
}

// TerminationDate returns the termination date, if terminated
func (s *Subscription) TerminationDate() *time.Time {
	return s.terminationDate
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}
