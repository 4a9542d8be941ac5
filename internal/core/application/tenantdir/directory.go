// Package tenantdir resolves incoming hosts to tenants and caches the results.
//
// Every request on the platform passes through the directory, so lookups are
// served from an in-process cache with a short TTL. Administrative tenant
// changes clear the whole cache; a stale read is otherwise bounded by the TTL.
package tenantdir

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/core/ports"
	"alltown/internal/pkg/errs"
)

// Mode selects the host resolution strategy. The strategy is fixed at
// startup; the directory never inspects the host to guess the environment.
type Mode int

const (
	// ModeDevelopment maps every host to the main site pseudo-tenant.
	ModeDevelopment Mode = iota

	// ModeProduction resolves hosts against the tenant registry.
	ModeProduction
)

// Directory resolves hosts and tenant ids to tenant aggregates, caching
// results for the configured TTL.
type Directory struct {
	tenants ports.TenantRepository
	mode    Mode
	apex    string
	ttl     time.Duration
	clock   func() time.Time
	logger  *slog.Logger

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

type cacheKey struct {
	kind  string
	value string
}

type cacheEntry struct {
	tenant    *tenant.Tenant
	expiresAt time.Time
}

// NewDirectory creates a tenant directory.
//
// apex is the platform's base domain (for example "alltown.example"); hosts
// equal to it, or to "www." plus it, resolve to the main site. ttl bounds how
// long a resolution may be served without consulting the repository.
func NewDirectory(
	tenants ports.TenantRepository,
	mode Mode,
	apex string,
	ttl time.Duration,
	clock func() time.Time,
	logger *slog.Logger,
) (*Directory, error) {
	if tenants == nil {
		return nil, errs.NewValueIsRequiredError("tenants")
	}
	if apex == "" {
		return nil, errs.NewValueIsRequiredError("apex")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl must be positive")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Directory{
		tenants: tenants,
		mode:    mode,
		apex:    strings.ToLower(apex),
		ttl:     ttl,
		clock:   clock,
		logger:  logger.With(slog.String("component", "tenantdir")),
		cache:   make(map[cacheKey]cacheEntry),
	}, nil
}

// Resolve maps a request host to its tenant.
//
// In development mode every host resolves to the main site. In production the
// apex and its www variant resolve to the main site, hosts under the apex are
// looked up by their subdomain label, and any other host is looked up as a
// custom domain. Unknown hosts and inactive tenants resolve to a not-found
// error; repository failures surface as dependency errors.
func (d *Directory) Resolve(ctx context.Context, host string) (*tenant.Tenant, error) {
	if d.mode == ModeDevelopment {
		return tenant.MainSite(), nil
	}

	host = normalizeHost(host)
	if host == "" {
		return nil, errs.NewObjectNotFoundError("host", host)
	}

	if host == d.apex || host == "www."+d.apex {
		return tenant.MainSite(), nil
	}

	if label, ok := strings.CutSuffix(host, "."+d.apex); ok {
		if strings.Contains(label, ".") {
			return nil, errs.NewObjectNotFoundError("host", host)
		}
		return d.resolveCached(ctx, "subdomain", label, func(ctx context.Context) (*tenant.Tenant, error) {
			return d.tenants.GetBySubdomain(ctx, label)
		})
	}

	return d.resolveCached(ctx, "domain", host, func(ctx context.Context) (*tenant.Tenant, error) {
		return d.tenants.GetByCustomDomain(ctx, host)
	})
}

// ResolveByID maps a tenant id to its tenant, with the same caching and
// active-flag handling as Resolve. The main site id resolves without touching
// the repository.
func (d *Directory) ResolveByID(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	if main := tenant.MainSite(); main.ID().IsEqual(id) {
		return main, nil
	}

	return d.resolveCached(ctx, "id", id.String(), func(ctx context.Context) (*tenant.Tenant, error) {
		return d.tenants.GetByID(ctx, id)
	})
}

// ClearAll drops every cached resolution. Called after any administrative
// tenant mutation so the next request observes the change.
func (d *Directory) ClearAll() {
	d.mu.Lock()
	d.cache = make(map[cacheKey]cacheEntry)
	d.mu.Unlock()

	d.logger.Debug("tenant cache cleared")
}

func (d *Directory) resolveCached(
	ctx context.Context,
	kind string,
	value string,
	load func(ctx context.Context) (*tenant.Tenant, error),
) (*tenant.Tenant, error) {
	key := cacheKey{kind: kind, value: value}
	now := d.clock()

	d.mu.RLock()
	entry, ok := d.cache[key]
	d.mu.RUnlock()

	if ok && now.Before(entry.expiresAt) {
		return d.checkActive(entry.tenant)
	}

	resolved, err := load(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		d.logger.Error("tenant lookup failed",
			slog.String("kind", kind), slog.Any("error", err))
		return nil, errs.NewDependencyUnavailableErrorWithCause("tenant registry", err)
	}

	d.mu.Lock()
	d.cache[key] = cacheEntry{tenant: resolved, expiresAt: now.Add(d.ttl)}
	d.mu.Unlock()

	return d.checkActive(resolved)
}

// checkActive keeps inactive tenants cached but never hands them out. The
// entry stays so a deactivated tenant does not hammer the repository.
func (d *Directory) checkActive(t *tenant.Tenant) (*tenant.Tenant, error) {
	if !t.IsActive() {
		return nil, errs.NewObjectNotFoundErrorWithCause("tenant", t.ID(),
			fmt.Errorf("tenant is inactive"))
	}
	return t, nil
}

// normalizeHost lower-cases the host and strips any port.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}
