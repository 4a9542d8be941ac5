package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"alltown/cmd"
	httpadapter "alltown/internal/adapters/in/http"
	"alltown/internal/adapters/out/postgres/deliveryrepo"
	"alltown/internal/adapters/out/postgres/driverrepo"
	"alltown/internal/adapters/out/postgres/loyaltyrepo"
	"alltown/internal/adapters/out/postgres/tenantrepo"
	"alltown/internal/core/application/tenantdir"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := mustConnectToDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		AppMode:          parseAppMode(goDotEnvVariable("APP_MODE")),
		TenantApexDomain: goDotEnvVariable("TENANT_APEX_DOMAIN"),
		TenantCacheTTL:   parseDuration("TENANT_CACHE_TTL"),
		GeoBaseURL:       goDotEnvVariable("GEO_BASE_URL"),
		LoyaltyThreshold: parseInt("LOYALTY_THRESHOLD"),
		StaleClaimAge:    parseDuration("STALE_CLAIM_AGE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func parseAppMode(value string) tenantdir.Mode {
	if value == "production" {
		return tenantdir.ModeProduction
	}
	return tenantdir.ModeDevelopment
}

func parseDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return value
}

func parseInt(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid number in %s: %v", key, err)
	}
	return value
}

func mustConnectToDB(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        configs.DatabaseDSN(),
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&tenantrepo.TenantDTO{},
		&driverrepo.DriverDTO{},
		&loyaltyrepo.AccountDTO{},
		&loyaltyrepo.CreditEventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// A tenant cannot be deleted while it still owns delivery requests.
	err = gormDB.Exec(`DO $$ BEGIN
		ALTER TABLE deliveries ADD CONSTRAINT fk_deliveries_tenant
			FOREIGN KEY (tenant_id) REFERENCES tenants (id) ON DELETE RESTRICT;
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$;`).Error
	if err != nil {
		log.Fatalf("Failed to add tenant foreign key: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateClaimDeliveryCommandHandler(),
		app.CreateAdvanceDeliveryCommandHandler(),
		app.CreateRegisterTenantCommandHandler(),
		app.CreateUpdateTenantSettingsCommandHandler(),
		app.CreateListAvailableDeliveriesQueryHandler(),
		app.CreateGetDeliveryQueryHandler(),
	)
	server.RegisterRoutes(e, app.TenantDirectory())

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
