// Package queries contains read-only operations that bypass the domain model
// and read the database directly. Implements the Query side of the CQRS
// architecture.
package queries

import (
	"errors"
	"time"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"ListAvailableDeliveriesQuery must be created via NewListAvailableDeliveriesQuery constructor",
)

// ListAvailableDeliveriesQuery retrieves a tenant's claimable delivery
// requests, oldest first, so waiting drivers see them in fair order.
type ListAvailableDeliveriesQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListAvailableDeliveriesQuery creates a query scoped to one tenant.
func NewListAvailableDeliveriesQuery(tenantID kernel.UUID) (ListAvailableDeliveriesQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return ListAvailableDeliveriesQuery{}, err
	}

	return ListAvailableDeliveriesQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableDeliveriesQueryIsNotConstructed)
}

// TenantID returns the tenant whose pool is being listed.
func (q ListAvailableDeliveriesQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// ListAvailableDeliveriesQueryResponse is one claimable request as shown to
// drivers. The fee is pre-rendered to two decimal places.
type ListAvailableDeliveriesQueryResponse struct {
	ID              kernel.UUID
	CustomerName    string
	PickupAddress   string
	DeliveryAddress string
	DistanceMiles   decimal.Decimal
	DurationMinutes int
	Fee             string
	Rush            bool
	RequestedFor    time.Time
	CreatedAt       time.Time
}
