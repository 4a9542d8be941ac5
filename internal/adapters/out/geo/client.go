// Package geo provides the HTTP client for the external route estimation
// service. Transient failures are retried with exponential backoff; anything
// that still fails is reported as a dependency failure so callers never
// create a request with a guessed distance.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"alltown/internal/core/ports"
	"alltown/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const maxRetries = 3

// Client implements ports.GeoClient against the route estimation HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a geo client for the given base URL. A nil httpClient
// falls back to a client with a 10 second timeout; a nil logger falls back to
// slog.Default.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.With("component", "geo_client"),
	}, nil
}

// routeResponse is the wire format of the estimation API.
type routeResponse struct {
	DistanceMiles   decimal.Decimal `json:"distance_miles"`
	DurationMinutes int             `json:"duration_minutes"`
}

// EstimateRoute returns the driving distance and duration between two
// addresses. Server errors and network failures are retried up to three
// times; client errors are not, since resending the same addresses cannot
// succeed.
func (c *Client) EstimateRoute(ctx context.Context, pickupAddress, deliveryAddress string) (ports.RouteEstimate, error) {
	if pickupAddress == "" {
		return ports.RouteEstimate{}, errs.NewValueIsRequiredError("pickup address")
	}
	if deliveryAddress == "" {
		return ports.RouteEstimate{}, errs.NewValueIsRequiredError("delivery address")
	}

	requestURL := fmt.Sprintf("%s/route?pickup=%s&dropoff=%s",
		c.baseURL, url.QueryEscape(pickupAddress), url.QueryEscape(deliveryAddress))

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)

	estimate, err := backoff.RetryWithData(func() (ports.RouteEstimate, error) {
		return c.fetchEstimate(ctx, requestURL)
	}, policy)
	if err != nil {
		c.logger.ErrorContext(ctx, "Route estimation failed", "error", err)
		return ports.RouteEstimate{}, errs.NewDependencyUnavailableErrorWithCause("geocoding service", err)
	}

	return estimate, nil
}

func (c *Client) fetchEstimate(ctx context.Context, requestURL string) (ports.RouteEstimate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return ports.RouteEstimate{}, backoff.Permanent(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.RouteEstimate{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ports.RouteEstimate{}, backoff.Permanent(
			fmt.Errorf("route estimation rejected with status %d", resp.StatusCode))
	default:
		return ports.RouteEstimate{}, fmt.Errorf("route estimation returned status %d", resp.StatusCode)
	}

	var body routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.RouteEstimate{}, err
	}

	if body.DistanceMiles.IsNegative() {
		return ports.RouteEstimate{}, backoff.Permanent(
			errs.NewValueIsInvalidError("distance cannot be negative"))
	}
	if body.DurationMinutes < 0 {
		return ports.RouteEstimate{}, backoff.Permanent(
			errs.NewValueIsInvalidError("duration cannot be negative"))
	}

	return ports.RouteEstimate{
		DistanceMiles:   body.DistanceMiles,
		DurationMinutes: body.DurationMinutes,
	}, nil
}
