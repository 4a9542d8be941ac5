// Package errs provides standardized error types for the delivery platform.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure class in the platform taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: validation
//     failures, always recoverable locally by the caller fixing its input
//   - ObjectNotFoundError: unknown tenant, delivery, or driver
//   - ConflictError: claim races and invalid state transitions, retryable by the
//     caller with fresh state
//   - NotAuthorizedError: tenant mismatch or insufficient role, never retried
//   - DependencyUnavailableError: an external collaborator failed or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// The HTTP adapter relies on these sentinels to map domain failures onto status
// codes without inspecting message text, which keeps the taxonomy distinctions
// (for example NotFound vs DependencyUnavailable) intact end to end.
package errs
