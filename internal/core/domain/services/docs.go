// Package services provides domain services that implement business logic
// spanning multiple aggregates.
//
// The package includes:
//   - Pricer: a domain service computing delivery fees from a tenant's
//     distance-tiered fee schedule
package services
