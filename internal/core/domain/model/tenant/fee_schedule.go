package tenant

import (
	"errors"
	"fmt"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"
	"alltown/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrFeeScheduleIsNotConstructed is returned when a FeeSchedule was not
// created through NewFeeSchedule.
var ErrFeeScheduleIsNotConstructed = errors.New(
	"FeeSchedule must be created via NewFeeSchedule constructor")

// FeeSchedule is the distance-tiered pricing configuration of a tenant.
// Deliveries within the base radius cost the flat base fee; every mile beyond
// it adds the per-mile price; rush service multiplies the resulting total.
//
// Invariants:
//   - Base fee and per-mile price are non-negative (enforced by kernel.Money)
//   - Base radius is non-negative
//   - Rush multiplier is at least 1
type FeeSchedule struct { //nolint:recvcheck //using for validation
	baseFee         kernel.Money
	pricePerMile    kernel.Money
	baseRadiusMiles decimal.Decimal
	rushMultiplier  decimal.Decimal

	guard guard.ConstructorGuard
}

// NewFeeSchedule creates a validated fee schedule.
func NewFeeSchedule(
	baseFee kernel.Money,
	pricePerMile kernel.Money,
	baseRadiusMiles decimal.Decimal,
	rushMultiplier decimal.Decimal,
) (FeeSchedule, error) {
	schedule := FeeSchedule{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		schedule.setBaseFee(baseFee),
		schedule.setPricePerMile(pricePerMile),
		schedule.setBaseRadiusMiles(baseRadiusMiles),
		schedule.setRushMultiplier(rushMultiplier),
	); err != nil {
		return FeeSchedule{}, err
	}

	return schedule, nil
}

// Validate ensures the schedule was created through NewFeeSchedule.
func (f FeeSchedule) Validate() error {
	return f.guard.Validate(ErrFeeScheduleIsNotConstructed)
}

// BaseFee returns the flat fee charged within the base radius.
func (f FeeSchedule) BaseFee() kernel.Money {
	return f.baseFee
}

// PricePerMile returns the price for each mile beyond the base radius.
func (f FeeSchedule) PricePerMile() kernel.Money {
	return f.pricePerMile
}

// BaseRadiusMiles returns the radius within which only the base fee applies.
func (f FeeSchedule) BaseRadiusMiles() decimal.Decimal {
	return f.baseRadiusMiles
}

// RushMultiplier returns the factor applied to the total fee for rush service.
func (f FeeSchedule) RushMultiplier() decimal.Decimal {
	return f.rushMultiplier
}

func (f *FeeSchedule) setBaseFee(baseFee kernel.Money) error {
	if err := baseFee.Validate(); err != nil {
		return err
	}
	f.baseFee = baseFee
	return nil
}

func (f *FeeSchedule) setPricePerMile(pricePerMile kernel.Money) error {
	if err := pricePerMile.Validate(); err != nil {
		return err
	}
	f.pricePerMile = pricePerMile
	return nil
}

func (f *FeeSchedule) setBaseRadiusMiles(baseRadiusMiles decimal.Decimal) error {
	if baseRadiusMiles.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("base radius is invalid",
			fmt.Errorf("%s is negative", baseRadiusMiles))
	}
	f.baseRadiusMiles = baseRadiusMiles
	return nil
}

func (f *FeeSchedule) setRushMultiplier(rushMultiplier decimal.Decimal) error {
	if rushMultiplier.LessThan(decimal.NewFromInt(1)) {
		return errs.NewValueIsInvalidErrorWithCause("rush multiplier is invalid",
			fmt.Errorf("%s is less than 1", rushMultiplier))
	}
	f.rushMultiplier = rushMultiplier
	return nil
}
