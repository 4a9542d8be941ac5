package queries

import (
	"errors"
	"time"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery request within a tenant. A request
// owned by another tenant is reported as not found, never as forbidden.
type GetDeliveryQuery struct {
	tenantID   kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for a single delivery request.
func NewGetDeliveryQuery(tenantID, deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := errors.Join(tenantID.Validate(), deliveryID.Validate()); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		tenantID:   tenantID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the lookup.
func (q GetDeliveryQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// DeliveryID returns the request being looked up.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryQueryResponse is the full read model of one delivery request.
type GetDeliveryQueryResponse struct {
	ID              kernel.UUID
	Status          string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	PickupAddress   string
	DeliveryAddress string
	RequestedFor    time.Time
	PaymentMethod   string
	Rush            bool
	DistanceMiles   decimal.Decimal
	DurationMinutes int
	Fee             string
	ClaimedBy       *kernel.UUID
	ClaimedAt       *time.Time
	DriverNotes     string
	CreatedAt       time.Time
}
