// Package http provides the inbound HTTP API. Every storefront and driver
// endpoint runs behind the tenant resolution middleware, so handlers always
// operate on an already-resolved tenant; platform administration endpoints
// are host-independent.
package http

import (
	"errors"
	"net/http"

	"alltown/internal/core/application/tenantdir"
	"alltown/internal/core/application/usecases/commands"
	"alltown/internal/core/application/usecases/queries"
	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryHandler  commands.CreateDeliveryCommandHandler
	claimDeliveryHandler   commands.ClaimDeliveryCommandHandler
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler
	registerTenantHandler  commands.RegisterTenantCommandHandler
	updateTenantHandler    commands.UpdateTenantSettingsCommandHandler

	listAvailableHandler queries.ListAvailableDeliveriesQueryHandler
	getDeliveryHandler   queries.GetDeliveryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	claimDeliveryHandler commands.ClaimDeliveryCommandHandler,
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler,
	registerTenantHandler commands.RegisterTenantCommandHandler,
	updateTenantHandler commands.UpdateTenantSettingsCommandHandler,
	listAvailableHandler queries.ListAvailableDeliveriesQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:  createDeliveryHandler,
		claimDeliveryHandler:   claimDeliveryHandler,
		advanceDeliveryHandler: advanceDeliveryHandler,
		registerTenantHandler:  registerTenantHandler,
		updateTenantHandler:    updateTenantHandler,
		listAvailableHandler:   listAvailableHandler,
		getDeliveryHandler:     getDeliveryHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance. Tenant-scoped
// routes go through the directory middleware; admin routes do not.
func (s *Server) RegisterRoutes(e *echo.Echo, directory *tenantdir.Directory) {
	scoped := e.Group("/api/v1", TenantMiddleware(directory))
	scoped.POST("/deliveries", s.CreateDelivery)
	scoped.GET("/deliveries", s.ListAvailableDeliveries)
	scoped.GET("/deliveries/:id", s.GetDelivery)
	scoped.POST("/deliveries/:id/claim", s.ClaimDelivery)
	scoped.PATCH("/deliveries/:id/status", s.AdvanceDelivery)

	admin := e.Group("/api/v1/admin")
	admin.POST("/tenants", s.RegisterTenant)
	admin.PUT("/tenants/:id", s.UpdateTenant)
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(c echo.Context) error {
	owner, err := tenantFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	var body CreateDeliveryRequest
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   errTokenValidation,
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customer, err := actorFromHeader(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(), owner, customer, body.toDetails(), body.UseFreeDelivery)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.createDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, deliveryResponseFromDomain(request))
}

// ListAvailableDeliveries handles GET /api/v1/deliveries - the driver pool,
// oldest first.
func (s *Server) ListAvailableDeliveries(c echo.Context) error {
	owner, err := tenantFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListAvailableDeliveriesQuery(owner.ID())
	if err != nil {
		return writeError(c, err)
	}

	rows, err := s.listAvailableHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]AvailableDeliveryResponse, len(rows))
	for i, row := range rows {
		response[i] = availableDeliveryFromReadModel(row)
	}

	return c.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(c echo.Context) error {
	owner, err := tenantFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	deliveryID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetDeliveryQuery(owner.ID(), deliveryID)
	if err != nil {
		return writeError(c, err)
	}

	row, err := s.getDeliveryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, deliveryResponseFromReadModel(row))
}

// ClaimDelivery handles POST /api/v1/deliveries/:id/claim.
func (s *Server) ClaimDelivery(c echo.Context) error {
	owner, err := tenantFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	deliveryID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	driverID, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewClaimDeliveryCommand(owner.ID(), deliveryID, driverID)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.claimDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, deliveryResponseFromDomain(request))
}

// AdvanceDelivery handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) AdvanceDelivery(c echo.Context) error {
	owner, err := tenantFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	deliveryID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	actorID, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}

	var body AdvanceDeliveryRequest
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   errTokenValidation,
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := delivery.StatusFromString(body.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(owner.ID(), deliveryID, actorID, target, body.DriverNotes)
	if err != nil {
		return writeError(c, err)
	}

	request, err := s.advanceDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, deliveryResponseFromDomain(request))
}

// RegisterTenant handles POST /api/v1/admin/tenants.
func (s *Server) RegisterTenant(c echo.Context) error {
	var body RegisterTenantRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   errTokenValidation,
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	plan, err := tenant.PlanTierFromString(body.Plan)
	if err != nil {
		return writeError(c, err)
	}

	schedule, err := body.FeeSchedule.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRegisterTenantCommand(kernel.NewUUID(), body.CompanyName,
		body.Subdomain, body.CustomDomain, body.Slug, body.BrandColor, plan, schedule)
	if err != nil {
		return writeError(c, err)
	}

	registered, err := s.registerTenantHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, tenantResponseFromDomain(registered))
}

// UpdateTenant handles PUT /api/v1/admin/tenants/:id.
func (s *Server) UpdateTenant(c echo.Context) error {
	tenantID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var body UpdateTenantRequest
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   errTokenValidation,
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var schedule *tenant.FeeSchedule
	if body.FeeSchedule != nil {
		parsed, scheduleErr := body.FeeSchedule.toDomain()
		if scheduleErr != nil {
			return writeError(c, scheduleErr)
		}
		schedule = &parsed
	}

	cmd, err := commands.NewUpdateTenantSettingsCommand(tenantID, body.BrandColor, body.Active, schedule)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.updateTenantHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, tenantResponseFromDomain(updated))
}

func parseIDParam(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

// Machine-readable tokens for the error envelope, one per failure class.
const (
	errTokenValidation = "validation_error"
	errTokenNotFound   = "not_found"
	errTokenForbidden  = "not_authorized"
	errTokenConflict   = "conflict"
	errTokenDependency = "dependency_unavailable"
	errTokenInternal   = "internal_error"
)

// writeError maps domain and application errors onto HTTP status codes.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	token := errTokenInternal

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		token = errTokenValidation
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		token = errTokenNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
		token = errTokenForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
		token = errTokenConflict
	case errors.Is(err, errs.ErrDependencyUnavailable):
		status = http.StatusBadGateway
		token = errTokenDependency
	}

	return c.JSON(status, ErrorResponse{
		Error:   token,
		Code:    status,
		Message: err.Error(),
	})
}
