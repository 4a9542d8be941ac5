package ports

import (
	"context"

	"alltown/internal/core/domain/model/kernel"
)

// LoyaltyLedger defines the persistence contract for per-tenant customer
// loyalty accounts. Both operations must run inside the same transaction as
// the delivery write they accompany.
type LoyaltyLedger interface {
	// SpendFreeDelivery consumes one free-delivery credit from the customer's
	// account in the tenant. Returns a conflict error when the account has no
	// credit to spend.
	SpendFreeDelivery(ctx context.Context, tenantID kernel.UUID, customerUserID kernel.UUID) error

	// CreditCompletion records a completion event for the delivery and awards
	// the customer a loyalty point, converting accumulated points into a
	// free-delivery credit when the threshold is reached. Recording the same
	// delivery's completion twice is a no-op.
	CreditCompletion(ctx context.Context, tenantID kernel.UUID, customerUserID kernel.UUID, deliveryID kernel.UUID) error

	// Balance reports the customer's current points and free-delivery credits.
	Balance(ctx context.Context, tenantID kernel.UUID, customerUserID kernel.UUID) (points int, freeCredits int, err error)
}
