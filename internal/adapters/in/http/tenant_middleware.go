package http

import (
	"errors"
	"net/http"

	"alltown/internal/core/application/tenantdir"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	tenantContextKey = "resolved_tenant"

	// actorHeader carries the authenticated user's id. Authentication itself
	// happens upstream; by the time a request reaches this service the header
	// is trusted.
	actorHeader = "X-User-Id"
)

// TenantMiddleware resolves the request's Host header to a tenant and stores
// it in the request context. Requests whose host does not map to an active
// tenant are rejected before any handler runs.
func TenantMiddleware(directory *tenantdir.Directory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			resolved, err := directory.Resolve(c.Request().Context(), c.Request().Host)
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					return c.JSON(http.StatusNotFound, ErrorResponse{
						Error:              errTokenNotFound,
						Code:               http.StatusNotFound,
						Message:            "No shop is configured for this address",
						IsInvalidSubdomain: true,
					})
				}
				return writeError(c, err)
			}

			c.Set(tenantContextKey, resolved)
			return next(c)
		}
	}
}

// tenantFromContext returns the tenant stored by TenantMiddleware.
func tenantFromContext(c echo.Context) (*tenant.Tenant, error) {
	resolved, ok := c.Get(tenantContextKey).(*tenant.Tenant)
	if !ok || resolved == nil {
		return nil, errs.NewValueIsRequiredError("resolved tenant")
	}
	return resolved, nil
}

// actorFromHeader returns the authenticated user's id from the request, or
// nil when the request is anonymous.
func actorFromHeader(c echo.Context) (*kernel.UUID, error) {
	raw := c.Request().Header.Get(actorHeader)
	if raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(actorHeader, err)
	}
	return &id, nil
}

// requireActor returns the authenticated user's id, rejecting anonymous
// requests.
func requireActor(c echo.Context) (kernel.UUID, error) {
	actor, err := actorFromHeader(c)
	if err != nil {
		return kernel.UUID{}, err
	}
	if actor == nil {
		return kernel.UUID{}, errs.NewNotAuthorizedError("authentication is required")
	}
	return *actor, nil
}
