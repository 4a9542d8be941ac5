package ports

import (
	"context"

	"alltown/internal/core/domain/model/driver"
	"alltown/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver and dispatcher
// profiles.
type DriverRepository interface {
	// Add persists a new profile.
	Add(ctx context.Context, aggregate *driver.Profile) error

	// Update persists changes to an existing profile.
	Update(ctx context.Context, aggregate *driver.Profile) error

	// Get retrieves a profile by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Profile, error)
}
