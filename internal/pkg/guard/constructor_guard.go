// Package guard provides a defensive construction pattern for value objects,
// commands, and entities. Embedding a ConstructorGuard in a struct makes it
// possible to detect whether the struct was created through its designated
// constructor or left as a zero value, so that invariants validated at
// construction time cannot be bypassed.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation
// error is supplied. This ensures validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures objects are only created through their designated
// constructor functions. The zero value fails validation; a guard produced by
// NewConstructorGuard passes.
//
// Example usage:
//
//	type FeeSchedule struct {
//	    baseFee kernel.Money
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewFeeSchedule(baseFee kernel.Money) (FeeSchedule, error) {
//	    return FeeSchedule{baseFee: baseFee, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (f FeeSchedule) Validate() error {
//	    return f.guard.Validate(ErrFeeScheduleIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of every guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects, validationError for zero
// values, and ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
