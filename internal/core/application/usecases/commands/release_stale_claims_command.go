package commands

import (
	"errors"
	"fmt"
	"time"

	"alltown/internal/pkg/errs"
	"alltown/internal/pkg/guard"
)

var ErrReleaseStaleClaimsCommandIsNotConstructed = errors.New(
	"ReleaseStaleClaimsCommand must be created via NewReleaseStaleClaimsCommand constructor",
)

// ReleaseStaleClaimsCommand represents a sweep returning claims older than
// the configured age, and never started, to the available pool.
type ReleaseStaleClaimsCommand struct { //nolint:recvcheck //using for validation
	maxClaimAge time.Duration

	guard guard.ConstructorGuard
}

// NewReleaseStaleClaimsCommand creates a command to release stale claims.
func NewReleaseStaleClaimsCommand(maxClaimAge time.Duration) (ReleaseStaleClaimsCommand, error) {
	if maxClaimAge <= 0 {
		return ReleaseStaleClaimsCommand{}, errs.NewValueIsInvalidErrorWithCause("max claim age",
			fmt.Errorf("%s is not positive", maxClaimAge))
	}

	return ReleaseStaleClaimsCommand{
		maxClaimAge: maxClaimAge,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleClaimsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleClaimsCommandIsNotConstructed)
}

// MaxClaimAge returns how long a claim may sit unstarted before the sweep
// releases it.
func (c ReleaseStaleClaimsCommand) MaxClaimAge() time.Duration {
	return c.maxClaimAge
}
