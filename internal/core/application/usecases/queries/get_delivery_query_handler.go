package queries

import (
	"context"
	"database/sql"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler reads one delivery request straight from the
// database.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery lookups.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns the request, or a not-found error when the id does not exist
// in the query's tenant.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_name,
			customer_phone,
			customer_email,
			pickup_address,
			delivery_address,
			requested_for,
			payment_method,
			rush,
			distance_miles,
			duration_minutes,
			fee,
			claimed_by,
			claimed_at,
			driver_notes,
			created_at
		FROM deliveries
		WHERE tenant_id = ? AND id = ?
	`, query.TenantID().Bytes(), query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDeliveryQueryResponse{}, err
		}
		return GetDeliveryQueryResponse{},
			errs.NewObjectNotFoundError("delivery", query.DeliveryID())
	}

	var resp GetDeliveryQueryResponse
	var id uuid.UUID
	var fee decimal.Decimal
	var claimedBy uuid.NullUUID
	var claimedAt sql.NullTime

	err = rows.Scan(
		&id,
		&resp.Status,
		&resp.CustomerName,
		&resp.CustomerPhone,
		&resp.CustomerEmail,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&resp.RequestedFor,
		&resp.PaymentMethod,
		&resp.Rush,
		&resp.DistanceMiles,
		&resp.DurationMinutes,
		&fee,
		&claimedBy,
		&claimedAt,
		&resp.DriverNotes,
		&resp.CreatedAt,
	)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	resp.ID = deliveryID

	feeMoney, err := kernel.NewMoney(fee)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	resp.Fee = feeMoney.StringFixed()

	if claimedBy.Valid {
		driverID, idErr := kernel.UUIDFromBytes(claimedBy.UUID[:])
		if idErr != nil {
			return GetDeliveryQueryResponse{}, idErr
		}
		resp.ClaimedBy = &driverID
	}
	if claimedAt.Valid {
		resp.ClaimedAt = &claimedAt.Time
	}

	return resp, rows.Err()
}
