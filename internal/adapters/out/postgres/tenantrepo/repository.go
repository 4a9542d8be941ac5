package tenantrepo

import (
	"context"
	"errors"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM.
type GormTenantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTenantRepository creates a new GORM tenant repository.
func NewGormTenantRepository(db *gorm.DB, tracker aggregateTracker) *GormTenantRepository {
	return &GormTenantRepository{
		db:      db,
		tracker: tracker,
	}
}

// isUniqueViolation reports whether the error is a unique constraint
// violation, either as raised by the postgres driver (SQLSTATE 23505) or as
// translated by gorm.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Add saves a new tenant to the database. A subdomain, custom domain, or
// slug already held by another tenant surfaces as a conflict.
func (r *GormTenantRepository) Add(ctx context.Context, aggregate *tenant.Tenant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("routing attribute is already taken", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing tenant to the database.
func (r *GormTenantRepository) Update(ctx context.Context, aggregate *tenant.Tenant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TenantDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return errs.NewConflictErrorWithCause("routing attribute is already taken", result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tenant", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByID retrieves a tenant by its unique identifier.
func (r *GormTenantRepository) GetByID(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getBy(ctx, "id = ?", id.Bytes())
}

// GetBySubdomain retrieves a tenant by its subdomain label.
func (r *GormTenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	if subdomain == "" {
		return nil, errs.NewValueIsRequiredError("subdomain")
	}

	return r.getBy(ctx, "subdomain = ?", subdomain)
}

// GetByCustomDomain retrieves a tenant by an exact custom domain match.
func (r *GormTenantRepository) GetByCustomDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	if domain == "" {
		return nil, errs.NewValueIsRequiredError("domain")
	}

	return r.getBy(ctx, "custom_domain = ?", domain)
}

func (r *GormTenantRepository) getBy(ctx context.Context, cond string, arg any) (*tenant.Tenant, error) {
	var dto TenantDTO
	if err := r.db.WithContext(ctx).First(&dto, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", arg)
		}
		return nil, err
	}

	return toDomain(dto)
}
