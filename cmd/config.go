package cmd

import (
	"fmt"
	"time"

	"alltown/internal/core/application/tenantdir"
)

// Config carries every externally supplied setting the process needs.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AppMode selects tenant resolution behavior: development resolves every
	// host to the main site, production resolves hosts against the registry.
	AppMode tenantdir.Mode

	// TenantApexDomain is the platform's base domain; tenant subdomains hang
	// off it.
	TenantApexDomain string

	// TenantCacheTTL bounds how long a host resolution may be served without
	// consulting the database.
	TenantCacheTTL time.Duration

	// GeoBaseURL is the base URL of the route estimation service.
	GeoBaseURL string

	// LoyaltyThreshold is the number of points that converts into one
	// free-delivery credit.
	LoyaltyThreshold int

	// StaleClaimAge is how long a claim may sit unstarted before the sweep
	// returns it to the pool.
	StaleClaimAge time.Duration
}

// DatabaseDSN assembles the postgres connection string.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
