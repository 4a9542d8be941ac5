package deliveryrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery request to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery request to the database. The write stays
// inside the request's tenant; an id that exists under another tenant counts
// as not found.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").Omit("id", "tenant_id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery request by id within the given tenant.
func (r *GormDeliveryRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Request, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves the tenant's claimable requests, oldest first.
func (r *GormDeliveryRepository) GetAllAvailable(ctx context.Context, tenantID kernel.UUID) ([]*delivery.Request, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID.Bytes(), delivery.StatusAvailable.String()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*delivery.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// Claim atomically assigns an available request to a driver.
//
// The entire claim is one conditional UPDATE: it only matches while the row
// is still available and unclaimed, so under concurrent claims the database
// serializes the writers and exactly one update takes effect. A zero-row
// result is then classified as either a missing request or a lost race.
func (r *GormDeliveryRepository) Claim(
	ctx context.Context,
	tenantID kernel.UUID,
	id kernel.UUID,
	driverID kernel.UUID,
	at time.Time,
) (*delivery.Request, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND tenant_id = ? AND status = ? AND claimed_by IS NULL",
			id.Bytes(), tenantID.Bytes(), delivery.StatusAvailable.String()).
		Updates(map[string]any{
			"status":     delivery.StatusClaimed.String(),
			"claimed_by": driverID.Bytes(),
			"claimed_at": at,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.classifyFailedClaim(ctx, tenantID, id)
	}

	claimed, err := r.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}

// classifyFailedClaim distinguishes "no such request in this tenant" from
// "someone else got there first".
func (r *GormDeliveryRepository) classifyFailedClaim(ctx context.Context, tenantID, id kernel.UUID) error {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("delivery", id)
		}
		return err
	}

	return errs.NewConflictErrorWithCause("request is not claimable",
		fmt.Errorf("status is %s", dto.Status))
}

// ReleaseStaleClaims returns every request claimed before the cutoff, and
// never started, to the available pool.
func (r *GormDeliveryRepository) ReleaseStaleClaims(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		UPDATE deliveries
		SET status = ?, claimed_by = NULL, claimed_at = NULL
		WHERE status = ? AND claimed_at < ?
		RETURNING id
	`, delivery.StatusAvailable.String(), delivery.StatusClaimed.String(), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	released := make([]kernel.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		releasedID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		released = append(released, releasedID)
	}

	return released, rows.Err()
}
