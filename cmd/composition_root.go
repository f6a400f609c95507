package cmd

import (
	"log/slog"

	"storefront/internal/adapters/out/courierapi"
	"storefront/internal/adapters/out/paymentapi"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/riskapi"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	courierClient *courierapi.Client
	riskClient    *riskapi.Client
	paymentClient *paymentapi.Client
	cache         *redis.Client

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var cache *redis.Client
	if config.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		courierClient: courierapi.NewClient(
			config.CourierAPIBaseURL, config.CourierAPIKey, config.ClientTimeout),
		riskClient: riskapi.NewClient(
			config.RiskAPIBaseURL, config.RiskAPIKey, config.ClientTimeout),
		paymentClient: paymentapi.NewClient(
			config.PaymentAPIBaseURL, config.PaymentAPIKey, config.ClientTimeout),
		cache:  cache,
		logger: logger,
	}
}

func (c *CompositionRoot) CreateRecordDraftCommandHandler() commands.RecordDraftCommandHandler {
	var f commands.DraftUoWFactory = FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDraftCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.paymentClient)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.riskClient)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory(), c.courierClient)
}

func (c *CompositionRoot) CreateRefreshCourierStatusCommandHandler() commands.RefreshCourierStatusCommandHandler {
	return commands.NewRefreshCourierStatusCommandHandler(c.orderUoWFactory(), c.courierClient)
}

func (c *CompositionRoot) CreateAssessRiskQueryHandler() queries.AssessRiskQueryHandler {
	return queries.NewAssessRiskQueryHandler(c.riskClient, c.cache, c.config.RiskCacheTTL)
}

func (c *CompositionRoot) CreateDraftConversionReportQueryHandler() queries.DraftConversionReportQueryHandler {
	return queries.NewDraftConversionReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCourierBalanceQueryHandler() queries.CourierBalanceQueryHandler {
	return queries.NewCourierBalanceQueryHandler(c.courierClient)
}

func (c *CompositionRoot) CreatePriceQuoteQueryHandler() queries.PriceQuoteQueryHandler {
	return queries.NewPriceQuoteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	courierStatusJob := jobs.NewCourierStatusJob(
		c.orderUoWFactory(),
		c.CreateRefreshCourierStatusCommandHandler(),
		c.config.CourierStatusCronSpec,
		c.logger,
	)

	var f commands.DraftUoWFactory = FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
	draftRetentionJob := jobs.NewDraftRetentionJob(
		f,
		c.config.DraftRetention,
		c.config.DraftRetentionCronSpec,
		c.logger,
	)

	return jobs.NewJobManager(courierStatusJob, draftRetentionJob)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncDraftUoWFactory func() commands.DraftUoW

func (f FuncDraftUoWFactory) Create() commands.DraftUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
