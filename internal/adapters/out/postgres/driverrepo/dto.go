// Package driverrepo provides data transfer objects and mapping functions
// for driver and dispatcher profile persistence.
package driverrepo

import (
	"alltown/internal/core/domain/model/driver"
	"alltown/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting profiles.
type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	Role     string `gorm:"type:varchar(16)"`
	OnDuty   bool
}

// TableName specifies the database table name for profiles.
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(profile *driver.Profile) DriverDTO {
	return DriverDTO{
		ID:       profile.ID().Bytes(),
		TenantID: profile.TenantID().Bytes(),
		Name:     profile.Name(),
		Role:     profile.Role().String(),
		OnDuty:   profile.IsOnDuty(),
	}
}

func toDomain(dto DriverDTO) (*driver.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	role, err := driver.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return driver.RestoreProfile(id, tenantID, dto.Name, role, dto.OnDuty)
}
