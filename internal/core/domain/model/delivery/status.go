package delivery

import (
	"fmt"

	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request. It is a value
// object implementing a state machine with defined transitions; every
// transition method returns the new status or a ConflictError so that a
// rejected transition is always distinguishable from a lost claim race by the
// caller.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status for tenants whose plan requires
	// operator review; pending requests are invisible to drivers.
	StatusPending

	// StatusAvailable marks a request as claimable by on-duty drivers of the
	// owning tenant.
	StatusAvailable

	// StatusClaimed marks a request as exclusively owned by one driver.
	StatusClaimed

	// StatusInProgress marks a claimed request the driver has started.
	StatusInProgress

	// StatusCompleted is a terminal state; completion triggers the loyalty
	// ledger credit.
	StatusCompleted

	// StatusCancelled is a terminal state reachable from any non-terminal
	// status by a dispatcher or admin.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusAvailable:  "available",
		StatusClaimed:    "claimed",
		StatusInProgress: "in_progress",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
	}
}

// StatusFromString parses a persisted or API-supplied status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the lower-case snake name of the status, as persisted and as
// exposed over the API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the status is one of the defined values.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// MakeAvailable transitions pending -> available (operator review passed).
func (s Status) MakeAvailable() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewConflictErrorWithCause("invalid status transition",
			fmt.Errorf("%s cannot become available", s))
	}
	return StatusAvailable, nil
}

// Claim transitions available -> claimed. Any other source status is a
// conflict: either the request was already claimed or it is not yet (or no
// longer) claimable.
func (s Status) Claim() (Status, error) {
	if s != StatusAvailable {
		return 0, errs.NewConflictErrorWithCause("delivery is not available to claim",
			fmt.Errorf("status is %s", s))
	}
	return StatusClaimed, nil
}

// Start transitions claimed -> in_progress.
func (s Status) Start() (Status, error) {
	if s != StatusClaimed {
		return 0, errs.NewConflictErrorWithCause("invalid status transition",
			fmt.Errorf("%s cannot start progress", s))
	}
	return StatusInProgress, nil
}

// Complete transitions in_progress -> completed.
func (s Status) Complete() (Status, error) {
	if s != StatusInProgress {
		return 0, errs.NewConflictErrorWithCause("invalid status transition",
			fmt.Errorf("%s cannot be completed", s))
	}
	return StatusCompleted, nil
}

// Cancel transitions pending, available, or claimed -> cancelled.
func (s Status) Cancel() (Status, error) {
	if s != StatusPending && s != StatusAvailable && s != StatusClaimed {
		return 0, errs.NewConflictErrorWithCause("invalid status transition",
			fmt.Errorf("%s cannot be cancelled", s))
	}
	return StatusCancelled, nil
}

// Release transitions claimed -> available, surrendering the claim.
func (s Status) Release() (Status, error) {
	if s != StatusClaimed {
		return 0, errs.NewConflictErrorWithCause("invalid status transition",
			fmt.Errorf("%s cannot release a claim", s))
	}
	return StatusAvailable, nil
}

// ValidateCanHaveClaim validates the consistency between status and claim
// assignment: pending and available requests carry no claim, claimed and
// in-progress (and completed) requests always do. Cancelled requests may keep
// the claim they had when cancelled, for audit purposes.
func (s Status) ValidateCanHaveClaim(hasClaim bool) error {
	switch s {
	case StatusPending, StatusAvailable:
		if hasClaim {
			return errs.NewValueIsInvalidErrorWithCause("status is invalid",
				fmt.Errorf("%s request cannot carry a claim", s))
		}
	case StatusClaimed, StatusInProgress, StatusCompleted:
		if !hasClaim {
			return errs.NewValueIsInvalidErrorWithCause("status is invalid",
				fmt.Errorf("%s request must carry a claim", s))
		}
	case StatusCancelled, StatusUnknown:
		// no claim constraint
	}
	return nil
}

// InitialStatus returns the creation status for a request under the given
// plan tier: pending for review-requiring tiers, otherwise available.
func InitialStatus(plan tenant.PlanTier) Status {
	if plan.RequiresReview() {
		return StatusPending
	}
	return StatusAvailable
}
