package delivery

import (
	"errors"
	"net/mail"
	"time"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not
	// created through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")
)

// Details carries the customer-supplied portion of a delivery request:
// contact fields, addresses, scheduling, and service flags. It is validated
// as a unit when the aggregate is constructed.
type Details struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	PickupAddress   string
	DeliveryAddress string
	RequestedFor    time.Time
	PaymentMethod   string
	Rush            bool
}

func (d Details) validate() error {
	var failures []error

	required := []struct {
		name  string
		value string
	}{
		{"customer name", d.CustomerName},
		{"customer phone", d.CustomerPhone},
		{"customer email", d.CustomerEmail},
		{"pickup address", d.PickupAddress},
		{"delivery address", d.DeliveryAddress},
		{"payment method", d.PaymentMethod},
	}
	for _, field := range required {
		if field.value == "" {
			failures = append(failures, errs.NewValueIsRequiredError(field.name))
		}
	}

	if d.CustomerEmail != "" {
		if _, err := mail.ParseAddress(d.CustomerEmail); err != nil {
			failures = append(failures, errs.NewValueIsInvalidErrorWithCause("customer email", err))
		}
	}

	if d.RequestedFor.IsZero() {
		failures = append(failures, errs.NewValueIsRequiredError("requested for"))
	}

	return errors.Join(failures...)
}

// Request is the aggregate root for a delivery request. The owning tenant is
// fixed at creation; the lifecycle coordinator exclusively owns the status and
// claim fields, and every mutation goes through a validated transition method.
type Request struct {
	id              kernel.UUID
	tenantID        kernel.UUID
	customerUserID  *kernel.UUID
	details         Details
	distanceMiles   decimal.Decimal
	durationMinutes int
	fee             kernel.Money
	status          Status
	claimedBy       *kernel.UUID
	claimedAt       *time.Time
	driverNotes     string
	usedFree        bool
	createdAt       time.Time

	isConstructed bool
}

// NewRequest creates a new delivery request with validation.
//
// The tenant id must come from the resolved tenant, never from client input.
// The distance, duration, and fee are the pricing engine's outputs for this
// request; initial must be StatusPending or StatusAvailable (see
// InitialStatus). customerUserID is nil for anonymous customers, and usedFree
// may only be true when the authenticated customer spent a free-delivery
// credit atomically with this creation.
func NewRequest(
	id kernel.UUID,
	tenantID kernel.UUID,
	customerUserID *kernel.UUID,
	details Details,
	distanceMiles decimal.Decimal,
	durationMinutes int,
	fee kernel.Money,
	initial Status,
	usedFree bool,
	createdAt time.Time,
) (*Request, error) {
	request := &Request{
		isConstructed: true,
	}

	if err := errors.Join(
		request.setID(id),
		request.setTenantID(tenantID),
		request.setCustomerUserID(customerUserID),
		request.setDetails(details),
		request.setDistanceMiles(distanceMiles),
		request.setDurationMinutes(durationMinutes),
		request.setFee(fee),
		request.setInitialStatus(initial),
		request.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	request.usedFree = usedFree
	return request, nil
}

// RestoreRequest reconstructs a request from persistence, including its
// status, claim pair, and driver notes. The claim pair must be consistent
// with the status. Used by repository implementations only.
func RestoreRequest(
	id kernel.UUID,
	tenantID kernel.UUID,
	customerUserID *kernel.UUID,
	details Details,
	distanceMiles decimal.Decimal,
	durationMinutes int,
	fee kernel.Money,
	status Status,
	claimedBy *kernel.UUID,
	claimedAt *time.Time,
	driverNotes string,
	usedFree bool,
	createdAt time.Time,
) (*Request, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if (claimedBy == nil) != (claimedAt == nil) {
		return nil, errs.NewValueIsInvalidError("claimedBy and claimedAt must be set together")
	}

	if err := status.ValidateCanHaveClaim(claimedBy != nil); err != nil {
		return nil, err
	}

	request := &Request{
		isConstructed: true,
	}

	if err := errors.Join(
		request.setID(id),
		request.setTenantID(tenantID),
		request.setCustomerUserID(customerUserID),
		request.setDetails(details),
		request.setDistanceMiles(distanceMiles),
		request.setDurationMinutes(durationMinutes),
		request.setFee(fee),
		request.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	request.status = status
	request.claimedBy = claimedBy
	request.claimedAt = claimedAt
	request.driverNotes = driverNotes
	request.usedFree = usedFree

	return request, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// TenantID returns the owning tenant's identifier. Immutable after creation.
func (r *Request) TenantID() kernel.UUID {
	return r.tenantID
}

// CustomerUserID returns the authenticated customer's identifier, or nil for
// anonymous requests.
func (r *Request) CustomerUserID() *kernel.UUID {
	return r.customerUserID
}

// Details returns the customer-supplied request details.
func (r *Request) Details() Details {
	return r.details
}

// DistanceMiles returns the geocoded pickup-to-delivery distance.
func (r *Request) DistanceMiles() decimal.Decimal {
	return r.distanceMiles
}

// DurationMinutes returns the estimated travel duration.
func (r *Request) DurationMinutes() int {
	return r.durationMinutes
}

// Fee returns the fee computed by the pricing engine at creation time.
func (r *Request) Fee() kernel.Money {
	return r.fee
}

// Status returns the current lifecycle status.
func (r *Request) Status() Status {
	return r.status
}

// ClaimedBy returns the claiming driver's identifier, or nil when unclaimed.
func (r *Request) ClaimedBy() *kernel.UUID {
	return r.claimedBy
}

// ClaimedAt returns the claim timestamp, or nil when unclaimed.
func (r *Request) ClaimedAt() *time.Time {
	return r.claimedAt
}

// DriverNotes returns the notes recorded by the driver, if any.
func (r *Request) DriverNotes() string {
	return r.driverNotes
}

// UsedFreeDelivery reports whether a loyalty free-delivery credit was spent
// on this request at creation.
func (r *Request) UsedFreeDelivery() bool {
	return r.usedFree
}

// CreatedAt returns the creation timestamp.
func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}

// MakeAvailable releases a pending request for driver claiming after review.
func (r *Request) MakeAvailable() error {
	newStatus, err := r.status.MakeAvailable()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// Claim assigns the request to a driver at the given time.
//
// The aggregate enforces the state-machine precondition; the at-most-one-
// driver guarantee under concurrent claims is enforced by the storage layer's
// conditional write, which applies exactly this transition.
func (r *Request) Claim(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Claim()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.claimedBy = &driverID
	r.claimedAt = &at
	return nil
}

// Start marks a claimed request as in progress.
func (r *Request) Start() error {
	newStatus, err := r.status.Start()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// Complete marks an in-progress request as delivered. Completion is terminal;
// the loyalty credit triggered by it is keyed on the request id so retries
// never credit twice.
func (r *Request) Complete() error {
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// Cancel force-cancels a non-terminal, not-yet-started request. The claim
// pair, when present, is kept for audit purposes.
func (r *Request) Cancel() error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// Release returns a claimed request to the available pool, clearing the claim
// pair. A released request is distinguishable from a fresh one by its
// creation timestamp and audit history.
func (r *Request) Release() error {
	newStatus, err := r.status.Release()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.claimedBy = nil
	r.claimedAt = nil
	return nil
}

// RecordDriverNotes replaces the driver notes on the request.
func (r *Request) RecordDriverNotes(notes string) {
	r.driverNotes = notes
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	r.tenantID = tenantID
	return nil
}

func (r *Request) setCustomerUserID(customerUserID *kernel.UUID) error {
	if customerUserID != nil {
		if err := customerUserID.Validate(); err != nil {
			return err
		}
	}
	r.customerUserID = customerUserID
	return nil
}

func (r *Request) setDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	r.details = details
	return nil
}

func (r *Request) setDistanceMiles(distanceMiles decimal.Decimal) error {
	if distanceMiles.IsNegative() {
		return errs.NewValueIsInvalidError("distance cannot be negative")
	}
	r.distanceMiles = distanceMiles
	return nil
}

func (r *Request) setDurationMinutes(durationMinutes int) error {
	if durationMinutes < 0 {
		return errs.NewValueIsInvalidError("duration cannot be negative")
	}
	r.durationMinutes = durationMinutes
	return nil
}

func (r *Request) setFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	r.fee = fee
	return nil
}

func (r *Request) setInitialStatus(initial Status) error {
	if initial != StatusPending && initial != StatusAvailable {
		return errs.NewValueIsInvalidError("initial status must be pending or available")
	}
	r.status = initial
	return nil
}

func (r *Request) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	r.createdAt = createdAt
	return nil
}
