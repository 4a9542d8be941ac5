package ports

import (
	"context"
	"time"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery request
// aggregates. Every read and write is scoped to a tenant; a request belonging
// to another tenant behaves exactly as if it did not exist.
type DeliveryRepository interface {
	// Add persists a new delivery request aggregate.
	Add(ctx context.Context, aggregate *delivery.Request) error

	// Update persists changes to an existing delivery request aggregate.
	Update(ctx context.Context, aggregate *delivery.Request) error

	// Get retrieves a request by id within the given tenant.
	// Returns a not-found error when the id does not exist in that tenant.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*delivery.Request, error)

	// GetAllAvailable retrieves the tenant's claimable requests ordered by
	// creation time, oldest first.
	GetAllAvailable(ctx context.Context, tenantID kernel.UUID) ([]*delivery.Request, error)

	// Claim atomically assigns an available request to a driver. The write
	// succeeds only if the request is still available and unclaimed at the
	// moment it executes; under concurrent claims exactly one driver wins.
	// Returns the claimed request, or a conflict error for the losers.
	Claim(ctx context.Context, tenantID kernel.UUID, id kernel.UUID, driverID kernel.UUID, at time.Time) (*delivery.Request, error)

	// ReleaseStaleClaims returns to the available pool every request claimed
	// before the cutoff and never started, clearing its claim. Reports the
	// ids of the released requests.
	ReleaseStaleClaims(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)
}
