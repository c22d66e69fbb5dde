package models

import (
	"time"
)

// SubscriptionModel is the database persistence model for the current
// subscription projection. This is the anti-corruption layer between domain
// and database; the JSON tags define the snapshot serialization stored in
// event rows.
type SubscriptionModel struct {
	ID                    string     `gorm:"primarykey;size:50" json:"id"`
	State                 string     `gorm:"not null;size:20;index" json:"state"`
	ContactID             string     `gorm:"not null;size:50" json:"contact_id"`
	CarID                 string     `gorm:"not null;size:50;index" json:"car_id"`
	Type                  string     `gorm:"not null;size:20" json:"type"`
	Term                  int        `gorm:"not null" json:"term"`
	SigningDate           time.Time  `gorm:"not null" json:"signing_date"`
	TermType              string     `gorm:"not null;size:50" json:"term_type"`
	Deposit               int64      `gorm:"not null" json:"deposit"`
	Amount                int64      `gorm:"not null" json:"amount"`
	MileagePackage        int        `gorm:"not null" json:"mileage_package"`
	MileagePackageFee     int64      `gorm:"not null" json:"mileage_package_fee"`
	AdditionalMileageFee  int64      `gorm:"not null" json:"additional_mileage_fee"`
	HandoverFirstName     string     `gorm:"column:handover_firstname;not null;size:100" json:"handover_firstname"`
	HandoverLastName      string     `gorm:"column:handover_lastname;not null;size:100" json:"handover_lastname"`
	HandoverHouseNumber   string     `gorm:"column:handover_housenumber;not null;size:100" json:"handover_housenumber"`
	HandoverStreet        string     `gorm:"not null;size:100" json:"handover_street"`
	HandoverCity          string     `gorm:"not null;size:100" json:"handover_city"`
	HandoverZip           string     `gorm:"not null;size:100" json:"handover_zip"`
	HandoverAddressExtra  *string    `gorm:"size:100" json:"handover_address_extra"`
	PreferredHandoverDate time.Time  `gorm:"not null" json:"preferred_handover_date"`
	TerminationReason     *string    `gorm:"size:255" json:"termination_reason"`
	TerminationDate       *time.Time `json:"termination_date"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
