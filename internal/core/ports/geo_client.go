package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RouteEstimate is a geocoding provider's answer for a pickup/delivery pair.
type RouteEstimate struct {
	DistanceMiles   decimal.Decimal
	DurationMinutes int
}

// GeoClient defines the contract for the external geocoding and routing
// provider. Implementations translate provider failures into dependency
// errors so callers can map them to an upstream-failure response.
type GeoClient interface {
	// EstimateRoute returns the driving distance and duration between two
	// street addresses.
	EstimateRoute(ctx context.Context, pickupAddress string, deliveryAddress string) (RouteEstimate, error)
}
