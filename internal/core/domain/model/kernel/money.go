package kernel

import (
	"fmt"

	"alltown/internal/pkg/errs"
	"alltown/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates a Money value was not created through one
// of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney, MoneyFromString, or ZeroMoney")

// Money is an immutable, non-negative monetary amount. Internally it carries
// full decimal precision; rounding to two places happens only at the display
// boundary via StringFixed, so chained base/extra/rush computations never
// compound rounding error.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%s is negative", amount))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a decimal string such as "5.00" into a Money value.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Decimal returns the underlying amount at full precision.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  guard.NewConstructorGuard(),
	}
}

// Mul returns the amount scaled by a non-negative factor at full precision.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(factor))
}

// IsEqual compares two amounts by numeric value, ignoring representation.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// StringFixed renders the amount rounded to two decimal places.
// This is the only place rounding is applied.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

// Validate checks the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
