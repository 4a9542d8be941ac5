package http

import (
	"time"

	"alltown/internal/core/application/usecases/queries"
	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the JSON body returned for every failed request. Error is
// a stable machine-readable token; Message is free text for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	// IsInvalidSubdomain flags host resolution failures so storefront clients
	// can show their "shop not found" page instead of a generic error.
	IsInvalidSubdomain bool `json:"isInvalidSubdomain,omitempty"`
}

// CreateDeliveryRequest is the request body for creating a delivery request.
type CreateDeliveryRequest struct {
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   string    `json:"customer_email"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	RequestedFor    time.Time `json:"requested_for"`
	PaymentMethod   string    `json:"payment_method"`
	Rush            bool      `json:"rush"`
	UseFreeDelivery bool      `json:"use_free_delivery"`
}

func (r CreateDeliveryRequest) toDetails() delivery.Details {
	return delivery.Details{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		RequestedFor:    r.RequestedFor,
		PaymentMethod:   r.PaymentMethod,
		Rush:            r.Rush,
	}
}

// AdvanceDeliveryRequest is the request body for a status transition.
type AdvanceDeliveryRequest struct {
	Status      string `json:"status"`
	DriverNotes string `json:"driver_notes"`
}

// DeliveryResponse is the full representation of a delivery request.
type DeliveryResponse struct {
	ID               string          `json:"id"`
	Status           string          `json:"status"`
	CustomerName     string          `json:"customer_name"`
	PickupAddress    string          `json:"pickup_address"`
	DeliveryAddress  string          `json:"delivery_address"`
	RequestedFor     time.Time       `json:"requested_for"`
	Rush             bool            `json:"rush"`
	DistanceMiles    decimal.Decimal `json:"distance_miles"`
	DurationMinutes  int             `json:"duration_minutes"`
	Fee              string          `json:"fee"`
	ClaimedBy        *string         `json:"claimed_by,omitempty"`
	ClaimedAt        *time.Time      `json:"claimed_at,omitempty"`
	DriverNotes      string          `json:"driver_notes,omitempty"`
	UsedFreeDelivery bool            `json:"used_free_delivery"`
	CreatedAt        time.Time       `json:"created_at"`
}

func deliveryResponseFromDomain(request *delivery.Request) DeliveryResponse {
	details := request.Details()
	resp := DeliveryResponse{
		ID:               request.ID().String(),
		Status:           request.Status().String(),
		CustomerName:     details.CustomerName,
		PickupAddress:    details.PickupAddress,
		DeliveryAddress:  details.DeliveryAddress,
		RequestedFor:     details.RequestedFor,
		Rush:             details.Rush,
		DistanceMiles:    request.DistanceMiles(),
		DurationMinutes:  request.DurationMinutes(),
		Fee:              request.Fee().StringFixed(),
		DriverNotes:      request.DriverNotes(),
		UsedFreeDelivery: request.UsedFreeDelivery(),
		CreatedAt:        request.CreatedAt(),
	}

	if claimedBy := request.ClaimedBy(); claimedBy != nil {
		id := claimedBy.String()
		resp.ClaimedBy = &id
	}
	resp.ClaimedAt = request.ClaimedAt()

	return resp
}

func deliveryResponseFromReadModel(row queries.GetDeliveryQueryResponse) DeliveryResponse {
	resp := DeliveryResponse{
		ID:              row.ID.String(),
		Status:          row.Status,
		CustomerName:    row.CustomerName,
		PickupAddress:   row.PickupAddress,
		DeliveryAddress: row.DeliveryAddress,
		RequestedFor:    row.RequestedFor,
		Rush:            row.Rush,
		DistanceMiles:   row.DistanceMiles,
		DurationMinutes: row.DurationMinutes,
		Fee:             row.Fee,
		DriverNotes:     row.DriverNotes,
		CreatedAt:       row.CreatedAt,
		ClaimedAt:       row.ClaimedAt,
	}

	if row.ClaimedBy != nil {
		id := row.ClaimedBy.String()
		resp.ClaimedBy = &id
	}

	return resp
}

// AvailableDeliveryResponse is one row of the driver pool listing.
type AvailableDeliveryResponse struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name"`
	PickupAddress   string          `json:"pickup_address"`
	DeliveryAddress string          `json:"delivery_address"`
	DistanceMiles   decimal.Decimal `json:"distance_miles"`
	DurationMinutes int             `json:"duration_minutes"`
	Fee             string          `json:"fee"`
	Rush            bool            `json:"rush"`
	RequestedFor    time.Time       `json:"requested_for"`
	CreatedAt       time.Time       `json:"created_at"`
}

func availableDeliveryFromReadModel(row queries.ListAvailableDeliveriesQueryResponse) AvailableDeliveryResponse {
	return AvailableDeliveryResponse{
		ID:              row.ID.String(),
		CustomerName:    row.CustomerName,
		PickupAddress:   row.PickupAddress,
		DeliveryAddress: row.DeliveryAddress,
		DistanceMiles:   row.DistanceMiles,
		DurationMinutes: row.DurationMinutes,
		Fee:             row.Fee,
		Rush:            row.Rush,
		RequestedFor:    row.RequestedFor,
		CreatedAt:       row.CreatedAt,
	}
}

// FeeScheduleDTO is the pricing configuration in API form.
type FeeScheduleDTO struct {
	BaseFee         string          `json:"base_fee"`
	PricePerMile    string          `json:"price_per_mile"`
	BaseRadiusMiles decimal.Decimal `json:"base_radius_miles"`
	RushMultiplier  decimal.Decimal `json:"rush_multiplier"`
}

func (d FeeScheduleDTO) toDomain() (tenant.FeeSchedule, error) {
	baseFee, err := kernel.MoneyFromString(d.BaseFee)
	if err != nil {
		return tenant.FeeSchedule{}, err
	}

	pricePerMile, err := kernel.MoneyFromString(d.PricePerMile)
	if err != nil {
		return tenant.FeeSchedule{}, err
	}

	return tenant.NewFeeSchedule(baseFee, pricePerMile, d.BaseRadiusMiles, d.RushMultiplier)
}

func feeScheduleFromDomain(schedule tenant.FeeSchedule) FeeScheduleDTO {
	return FeeScheduleDTO{
		BaseFee:         schedule.BaseFee().StringFixed(),
		PricePerMile:    schedule.PricePerMile().StringFixed(),
		BaseRadiusMiles: schedule.BaseRadiusMiles(),
		RushMultiplier:  schedule.RushMultiplier(),
	}
}

// RegisterTenantRequest is the request body for onboarding a tenant.
type RegisterTenantRequest struct {
	CompanyName  string         `json:"company_name"`
	Subdomain    string         `json:"subdomain"`
	CustomDomain string         `json:"custom_domain"`
	Slug         string         `json:"slug"`
	BrandColor   string         `json:"brand_color"`
	Plan         string         `json:"plan"`
	FeeSchedule  FeeScheduleDTO `json:"fee_schedule"`
}

// UpdateTenantRequest is the request body for changing tenant settings.
// Absent fields are left unchanged.
type UpdateTenantRequest struct {
	BrandColor  *string         `json:"brand_color"`
	Active      *bool           `json:"active"`
	FeeSchedule *FeeScheduleDTO `json:"fee_schedule"`
}

// TenantResponse is the full representation of a tenant.
type TenantResponse struct {
	ID           string         `json:"id"`
	CompanyName  string         `json:"company_name"`
	Subdomain    string         `json:"subdomain,omitempty"`
	CustomDomain string         `json:"custom_domain,omitempty"`
	Slug         string         `json:"slug,omitempty"`
	BrandColor   string         `json:"brand_color,omitempty"`
	Active       bool           `json:"active"`
	Plan         string         `json:"plan"`
	FeeSchedule  FeeScheduleDTO `json:"fee_schedule"`
}

func tenantResponseFromDomain(aggregate *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:           aggregate.ID().String(),
		CompanyName:  aggregate.CompanyName(),
		Subdomain:    aggregate.Subdomain(),
		CustomDomain: aggregate.CustomDomain(),
		Slug:         aggregate.Slug(),
		BrandColor:   aggregate.BrandColor(),
		Active:       aggregate.IsActive(),
		Plan:         aggregate.Plan().String(),
		FeeSchedule:  feeScheduleFromDomain(aggregate.FeeSchedule()),
	}
}
