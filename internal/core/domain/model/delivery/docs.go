// Package delivery provides the domain model for delivery requests, the
// central entity of the platform. It implements the Request aggregate root and
// the Status state machine governing the request lifecycle.
//
// Lifecycle:
//
//	pending ──> available ──> claimed ──> in_progress ──> completed
//	   │            │          │   │
//	   │            │          │   └──> available   (claim released)
//	   └────────────┴──────────┴──────> cancelled
//
// Key business rules:
//   - A request belongs to exactly one tenant; the tenant id is set at
//     creation and never changes
//   - claimedBy and claimedAt are both nil or both set
//   - Claimed and in-progress requests always carry a claim; pending and
//     available requests never do
//   - Completed and cancelled are terminal states
//   - Requests created under a review-requiring plan tier start as pending,
//     all others as available
package delivery
