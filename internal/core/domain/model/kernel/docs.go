// Package kernel provides the shared value objects used across the delivery
// platform's domain model.
//
// It contains:
//   - UUID: an immutable identifier value object wrapping github.com/google/uuid
//   - Money: a non-negative decimal amount with full internal precision and
//     2-place rounding applied only at the display boundary
//
// All value objects are immutable, validate themselves at construction, and
// expose a Validate method that detects zero values created outside their
// constructors.
package kernel
