// Package tenant provides the domain model for an isolated business instance
// on the platform. Every delivery request, driver profile, and fee schedule is
// owned by exactly one tenant, and tenants are resolved from inbound hosts by
// the tenant directory.
//
// The package includes:
//   - Tenant: the aggregate root carrying identity, routing attributes
//     (subdomain, custom domain, slug), branding, plan tier, and fee schedule
//   - PlanTier: the subscription tier, which decides whether newly created
//     delivery requests require operator review before becoming claimable
//   - FeeSchedule: the distance-tiered pricing configuration consumed by the
//     pricing engine
//
// Key business rules:
//   - Subdomain, custom domain, and slug are each globally unique when present
//     (enforced by the persistence layer)
//   - Fee schedule amounts and the base radius are non-negative; the rush
//     multiplier is at least 1
//   - The synthetic main-site tenant handles marketing/landing traffic and
//     never owns delivery requests
package tenant
