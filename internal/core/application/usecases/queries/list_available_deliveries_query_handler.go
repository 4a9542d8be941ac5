package queries

import (
	"context"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListAvailableDeliveriesQueryHandler reads a tenant's claimable requests
// straight from the database.
type ListAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListAvailableDeliveriesQueryHandler creates a handler for pool listings.
func NewListAvailableDeliveriesQueryHandler(db *gorm.DB) ListAvailableDeliveriesQueryHandler {
	return ListAvailableDeliveriesQueryHandler{db: db}
}

// Handle returns the tenant's available requests ordered by creation time,
// oldest first.
func (h ListAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableDeliveriesQuery,
) ([]ListAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]ListAvailableDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			pickup_address,
			delivery_address,
			distance_miles,
			duration_minutes,
			fee,
			rush,
			requested_for,
			created_at
		FROM deliveries
		WHERE tenant_id = ? AND status = ?
		ORDER BY created_at ASC
	`, query.TenantID().Bytes(), delivery.StatusAvailable.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListAvailableDeliveriesQueryResponse
		var id uuid.UUID
		var fee decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.CustomerName,
			&resp.PickupAddress,
			&resp.DeliveryAddress,
			&resp.DistanceMiles,
			&resp.DurationMinutes,
			&fee,
			&resp.Rush,
			&resp.RequestedFor,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		feeMoney, feeErr := kernel.NewMoney(fee)
		if feeErr != nil {
			return nil, feeErr
		}
		resp.Fee = feeMoney.StringFixed()

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
