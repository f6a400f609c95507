package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres/couponrepo"
	"storefront/internal/adapters/out/postgres/draftrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/zonerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file found, relying on environment: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		CourierAPIBaseURL: os.Getenv("COURIER_API_BASE_URL"),
		CourierAPIKey:     os.Getenv("COURIER_API_KEY"),
		RiskAPIBaseURL:    os.Getenv("RISK_API_BASE_URL"),
		RiskAPIKey:        os.Getenv("RISK_API_KEY"),
		PaymentAPIBaseURL: os.Getenv("PAYMENT_API_BASE_URL"),
		PaymentAPIKey:     os.Getenv("PAYMENT_API_KEY"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RiskCacheTTL:  time.Duration(envIntOr("RISK_CACHE_TTL_MINUTES", 30)) * time.Minute,
		ClientTimeout: time.Duration(envIntOr("CLIENT_TIMEOUT_SECONDS", 10)) * time.Second,

		DraftRetention:         time.Duration(envIntOr("DRAFT_RETENTION_DAYS", 30)) * 24 * time.Hour,
		CourierStatusCronSpec:  envOr("COURIER_STATUS_CRON", "*/10 * * * *"),
		DraftRetentionCronSpec: envOr("DRAFT_RETENTION_CRON", "0 4 * * *"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&draftrepo.DraftDTO{},
		&couponrepo.CouponDTO{},
		&zonerepo.ZoneDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateRecordDraftCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateDispatchOrderCommandHandler(),
		app.CreateRefreshCourierStatusCommandHandler(),
		app.CreateAssessRiskQueryHandler(),
		app.CreateDraftConversionReportQueryHandler(),
		app.CreateCourierBalanceQueryHandler(),
		app.CreatePriceQuoteQueryHandler(),
		logger,
	)
	server.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
