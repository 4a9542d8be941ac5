// Package loyaltyrepo persists per-tenant customer loyalty accounts and the
// completion events that feed them. The event table's composite primary key
// is what makes completion crediting idempotent: recording the same
// delivery's completion twice simply inserts nothing.
package loyaltyrepo

import (
	"time"

	"github.com/google/uuid"
)

// AccountDTO is one customer's loyalty balance within one tenant.
type AccountDTO struct {
	TenantID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerUserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Points         int
	FreeCredits    int
}

// TableName specifies the database table name for loyalty accounts.
func (AccountDTO) TableName() string {
	return "loyalty_accounts"
}

// CreditEventDTO records that a delivery's completion has been credited.
type CreditEventDTO struct {
	DeliveryID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Event          string    `gorm:"type:varchar(16);primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid"`
	CustomerUserID uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for loyalty credit events.
func (CreditEventDTO) TableName() string {
	return "loyalty_events"
}
