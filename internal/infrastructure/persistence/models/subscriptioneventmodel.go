package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubscriptionEventModel is the database persistence model for the
// append-only event log. Snapshot holds the JSON-serialized SubscriptionModel
// as committed in the same transaction. Seq is assigned by the database and
// breaks ordering ties between events carrying the same timestamp.
type SubscriptionEventModel struct {
	Seq            uint64         `gorm:"primarykey"`
	ID             string         `gorm:"uniqueIndex;not null;size:50"`
	Name           string         `gorm:"not null;size:50"`
	Actor          string         `gorm:"not null;size:200"`
	Notes          *string        `gorm:"type:text"`
	Time           time.Time      `gorm:"not null;index:idx_subscription_time,priority:2"`
	Snapshot       datatypes.JSON `gorm:"not null"`
	SubscriptionID string         `gorm:"not null;size:50;index;index:idx_subscription_time,priority:1"`
}

// TableName specifies the table name for GORM
func (SubscriptionEventModel) TableName() string {
	return "subscription_events"
}
