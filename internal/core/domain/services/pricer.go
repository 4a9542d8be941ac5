package services

import (
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quote is the result of pricing a delivery against a tenant's fee schedule.
// Breakdown fields echo the inputs so the quote can be rendered to the
// customer without re-deriving them.
type Quote struct {
	Total kernel.Money

	// IsWithinBaseRadius reports whether the distance fell inside the flat
	// base-fee radius, boundary included.
	IsWithinBaseRadius bool

	Breakdown Breakdown
}

// Breakdown itemizes how a quote's total was computed.
type Breakdown struct {
	BaseFee         kernel.Money
	BaseRadiusMiles decimal.Decimal
	ExtraMiles      decimal.Decimal
	PricePerMile    kernel.Money
	RushMultiplier  decimal.Decimal
}

// Pricer computes delivery fees from a tenant's distance-tiered fee schedule.
//
// Business rules:
//   - Distances up to and including the base radius cost the flat base fee
//   - Every mile beyond the radius adds the per-mile price, fractional miles
//     billed proportionally
//   - Rush service multiplies the resulting total, never the base fee alone
type Pricer struct{}

// NewPricer creates a new Pricer instance.
func NewPricer() Pricer {
	return Pricer{}
}

// Quote prices a delivery of the given distance against the schedule.
// A negative distance is rejected, not clamped.
func (p Pricer) Quote(distanceMiles decimal.Decimal, rush bool, schedule tenant.FeeSchedule) (Quote, error) {
	if err := schedule.Validate(); err != nil {
		return Quote{}, err
	}

	if distanceMiles.IsNegative() {
		return Quote{}, errs.NewValueIsInvalidError("distance cannot be negative")
	}

	extraMiles := distanceMiles.Sub(schedule.BaseRadiusMiles())
	if extraMiles.IsNegative() {
		extraMiles = decimal.Zero
	}

	surcharge, err := schedule.PricePerMile().Mul(extraMiles)
	if err != nil {
		return Quote{}, err
	}

	total := schedule.BaseFee().Add(surcharge)

	multiplier := decimal.NewFromInt(1)
	if rush {
		multiplier = schedule.RushMultiplier()
		total, err = total.Mul(multiplier)
		if err != nil {
			return Quote{}, err
		}
	}

	return Quote{
		Total:              total,
		IsWithinBaseRadius: distanceMiles.LessThanOrEqual(schedule.BaseRadiusMiles()),
		Breakdown: Breakdown{
			BaseFee:         schedule.BaseFee(),
			BaseRadiusMiles: schedule.BaseRadiusMiles(),
			ExtraMiles:      extraMiles,
			PricePerMile:    schedule.PricePerMile(),
			RushMultiplier:  multiplier,
		},
	}, nil
}
