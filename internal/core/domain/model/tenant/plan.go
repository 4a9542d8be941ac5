package tenant

import (
	"fmt"

	"alltown/internal/pkg/errs"
)

// PlanTier represents a tenant's subscription tier. Besides billing (out of
// scope here), the tier decides whether new delivery requests require operator
// review before they become visible to drivers.
type PlanTier int

const (
	// PlanUnknown represents an invalid or undefined tier.
	PlanUnknown PlanTier = iota

	// PlanTrial is the evaluation tier. Requests created under a trial tenant
	// start in review (pending) before drivers can see them.
	PlanTrial

	// PlanStandard is the default paid tier.
	PlanStandard

	// PlanPremium is the full-featured paid tier.
	PlanPremium
)

func getPlanTierStrings() map[PlanTier]string {
	return map[PlanTier]string{
		PlanUnknown:  "unknown",
		PlanTrial:    "trial",
		PlanStandard: "standard",
		PlanPremium:  "premium",
	}
}

// PlanTierFromString parses a persisted or configured tier name.
func PlanTierFromString(s string) (PlanTier, error) {
	for tier, str := range getPlanTierStrings() {
		if str == s && tier != PlanUnknown {
			return tier, nil
		}
	}
	return PlanUnknown, errs.NewValueIsInvalidErrorWithCause("plan tier is invalid",
		fmt.Errorf("%q is not a valid plan tier", s))
}

// String returns the lower-case name of the tier.
func (p PlanTier) String() string {
	if str, ok := getPlanTierStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the tier is one of the defined values.
func (p PlanTier) Validate() error {
	if p != PlanTrial && p != PlanStandard && p != PlanPremium {
		return errs.NewValueIsInvalidErrorWithCause("plan tier is invalid",
			fmt.Errorf("%d is not a valid plan tier", p))
	}
	return nil
}

// RequiresReview reports whether delivery requests created under this tier
// start in the pending (operator review) status instead of being immediately
// claimable.
func (p PlanTier) RequiresReview() bool {
	return p == PlanTrial
}
