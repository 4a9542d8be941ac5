// Package driver provides the domain model for the people acting on delivery
// requests: drivers who claim and fulfill them, and dispatchers/admins who
// monitor and force transitions for their tenant.
package driver

import (
	"errors"
	"fmt"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"
)

// ErrProfileIsNotConstructed is returned when a Profile instance was not
// created through NewProfile or RestoreProfile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")

// Role is the actor's role within its tenant.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleDriver claims and advances its own deliveries.
	RoleDriver

	// RoleDispatcher monitors a tenant's deliveries and may force transitions.
	RoleDispatcher

	// RoleAdmin has dispatcher powers plus tenant administration.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleDriver:     "driver",
		RoleDispatcher: "dispatcher",
		RoleAdmin:      "admin",
	}
}

// RoleFromString parses a persisted role name.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the lower-case name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the role is one of the defined values.
func (r Role) Validate() error {
	if r != RoleDriver && r != RoleDispatcher && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// CanManage reports whether the role may force transitions and act on
// deliveries it does not own (dispatcher and admin).
func (r Role) CanManage() bool {
	return r == RoleDispatcher || r == RoleAdmin
}

// Profile is a user profile acting within exactly one tenant. A profile can
// only claim, list, or advance delivery requests owned by its own tenant.
type Profile struct {
	id       kernel.UUID
	tenantID kernel.UUID
	name     string
	role     Role
	onDuty   bool

	isConstructed bool
}

// NewProfile creates a validated profile. New profiles start off duty.
func NewProfile(id kernel.UUID, tenantID kernel.UUID, name string, role Role) (*Profile, error) {
	profile := &Profile{
		isConstructed: true,
	}

	if err := errors.Join(
		profile.setID(id),
		profile.setTenantID(tenantID),
		profile.setName(name),
		profile.setRole(role),
	); err != nil {
		return nil, err
	}

	return profile, nil
}

// RestoreProfile reconstructs a profile from persistence, including its
// on-duty flag. Used by repository implementations only.
func RestoreProfile(id kernel.UUID, tenantID kernel.UUID, name string, role Role, onDuty bool) (*Profile, error) {
	profile, err := NewProfile(id, tenantID, name, role)
	if err != nil {
		return nil, err
	}

	profile.onDuty = onDuty
	return profile, nil
}

// Validate ensures the Profile instance was properly constructed.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// ID returns the profile's unique identifier.
func (p *Profile) ID() kernel.UUID {
	return p.id
}

// TenantID returns the tenant the profile belongs to.
func (p *Profile) TenantID() kernel.UUID {
	return p.tenantID
}

// Name returns the display name.
func (p *Profile) Name() string {
	return p.name
}

// Role returns the profile's role.
func (p *Profile) Role() Role {
	return p.role
}

// IsOnDuty reports whether the driver is currently accepting work.
func (p *Profile) IsOnDuty() bool {
	return p.onDuty
}

// SetOnDuty toggles the driver's availability.
func (p *Profile) SetOnDuty(onDuty bool) {
	p.onDuty = onDuty
}

// BelongsTo reports whether the profile acts within the given tenant.
func (p *Profile) BelongsTo(tenantID kernel.UUID) bool {
	return p.tenantID.IsEqual(tenantID)
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	p.tenantID = tenantID
	return nil
}

func (p *Profile) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Profile) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
