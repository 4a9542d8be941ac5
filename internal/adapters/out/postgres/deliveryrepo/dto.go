// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery request persistence. It implements the repository pattern for
// the delivery aggregate, handling conversion between domain entities and
// database representations.
package deliveryrepo

import (
	"time"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery
// request aggregates. The composite (tenant_id, status) index serves the
// driver pool listing; claimed_at is indexed for the stale-claim sweep.
type DeliveryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID  `gorm:"type:uuid;index:idx_deliveries_tenant_status"`
	CustomerUserID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	PickupAddress    string
	DeliveryAddress  string
	RequestedFor     time.Time
	PaymentMethod    string
	Rush             bool
	DistanceMiles    decimal.Decimal `gorm:"type:numeric"`
	DurationMinutes  int
	Fee              decimal.Decimal `gorm:"type:numeric"`
	Status           string          `gorm:"type:varchar(16);index:idx_deliveries_tenant_status"`
	ClaimedBy        *uuid.UUID      `gorm:"type:uuid"`
	ClaimedAt        *time.Time      `gorm:"index"`
	DriverNotes      string
	UsedFreeDelivery bool
	CreatedAt        time.Time `gorm:"index"`
}

// TableName specifies the database table name for delivery requests.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery request aggregate to its database
// representation.
func fromDomain(request *delivery.Request) DeliveryDTO {
	var customerUserID *uuid.UUID
	if id := request.CustomerUserID(); id != nil {
		raw := id.Bytes()
		customerUserID = &raw
	}

	var claimedBy *uuid.UUID
	if id := request.ClaimedBy(); id != nil {
		raw := id.Bytes()
		claimedBy = &raw
	}

	details := request.Details()
	return DeliveryDTO{
		ID:               request.ID().Bytes(),
		TenantID:         request.TenantID().Bytes(),
		CustomerUserID:   customerUserID,
		CustomerName:     details.CustomerName,
		CustomerPhone:    details.CustomerPhone,
		CustomerEmail:    details.CustomerEmail,
		PickupAddress:    details.PickupAddress,
		DeliveryAddress:  details.DeliveryAddress,
		RequestedFor:     details.RequestedFor,
		PaymentMethod:    details.PaymentMethod,
		Rush:             details.Rush,
		DistanceMiles:    request.DistanceMiles(),
		DurationMinutes:  request.DurationMinutes(),
		Fee:              request.Fee().Decimal(),
		Status:           request.Status().String(),
		ClaimedBy:        claimedBy,
		ClaimedAt:        request.ClaimedAt(),
		DriverNotes:      request.DriverNotes(),
		UsedFreeDelivery: request.UsedFreeDelivery(),
		CreatedAt:        request.CreatedAt(),
	}
}

// toDomain converts a database DTO to a delivery request aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var customerUserID *kernel.UUID
	if dto.CustomerUserID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CustomerUserID)[:])
		if cErr != nil {
			return nil, cErr
		}
		customerUserID = &cID
	}

	var claimedBy *kernel.UUID
	if dto.ClaimedBy != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.ClaimedBy)[:])
		if dErr != nil {
			return nil, dErr
		}
		claimedBy = &dID
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoney(dto.Fee)
	if err != nil {
		return nil, err
	}

	details := delivery.Details{
		CustomerName:    dto.CustomerName,
		CustomerPhone:   dto.CustomerPhone,
		CustomerEmail:   dto.CustomerEmail,
		PickupAddress:   dto.PickupAddress,
		DeliveryAddress: dto.DeliveryAddress,
		RequestedFor:    dto.RequestedFor,
		PaymentMethod:   dto.PaymentMethod,
		Rush:            dto.Rush,
	}

	return delivery.RestoreRequest(id, tenantID, customerUserID, details,
		dto.DistanceMiles, dto.DurationMinutes, fee, status,
		claimedBy, dto.ClaimedAt, dto.DriverNotes, dto.UsedFreeDelivery, dto.CreatedAt)
}
