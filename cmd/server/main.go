package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	eventapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/event"
	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/cache"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/config"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/event"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/export"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/receipt"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/telemetry"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/handler"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/middleware"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	providers := startTelemetry(ctx, cfg, log)
	defer providers.shutdown(log)

	// Tee zap into the OTLP log pipeline once it is up
	if providers.logs.IsEnabled() {
		if bridged, err := logger.New(logCfg, providers.logs.ZapCore(logger.ParseLevel(cfg.Log.Level))); err == nil {
			log = bridged
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting dealer ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQuery),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if cfg.Database.SlowQuery > 0 {
		dbTracing.SlowQueryThresh = cfg.Database.SlowQuery
	}
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected")

	ledgerMetrics, err := telemetry.NewLedgerMetrics(providers.metrics.Meter("dealer-ledger"))
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}

	// Repositories
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	outboxRepo := event.NewGormOutboxRepository(db.DB)
	outboxPublisher := event.NewOutboxPublisher(serializer, cfg.Event.MaxRetries)

	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB, outboxPublisher)
	bankRepo := persistence.NewGormBankTransactionRepository(db.DB)
	roleRepo := persistence.NewGormCommissionRoleRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db.DB)
	postingRepo := persistence.NewGormLedgerPostingRepository(db.DB)

	backends, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := backends.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Company ledger mirror: outbox -> bus -> idempotent posting handler
	poster := ledgerapp.NewLedgerPoster(categoryRepo, postingRepo, log)
	poster.SetLedgerMetrics(ledgerMetrics)
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewIdempotentHandler(
		ledgerapp.NewMirrorPostingHandler(vehicleRepo, poster, log),
		backends.Idempotency,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{TTL: cfg.Event.IdempotencyTTL, Enabled: true}),
	))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() { _ = eventBus.Stop(context.Background()) }()

	var processorOpts []event.OutboxProcessorOption
	if backends.Leaser != nil {
		processorOpts = append(processorOpts, event.WithBatchLocker(backends.Leaser))
	}
	processor := event.NewOutboxProcessor(outboxRepo, eventBus, serializer, event.OutboxProcessorConfig{
		BatchSize:        cfg.Event.BatchSize,
		PollInterval:     cfg.Event.PollInterval,
		StuckAfter:       cfg.Event.StuckAfter,
		LeaseTTL:         cfg.Event.LeaseTTL,
		CleanupEnabled:   cfg.Event.CleanupEnabled,
		CleanupRetention: cfg.Event.CleanupRetention,
		CleanupInterval:  cfg.Event.CleanupInterval,
	}, log, processorOpts...)
	if cfg.Event.ProcessorEnabled {
		if err := processor.Start(ctx); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := processor.Stop(stopCtx); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
	}

	// Application services
	extractor, err := receipt.NewExtractor(ctx, cfg.Receipt, log)
	if err != nil {
		log.Fatal("Failed to create receipt extractor", zap.Error(err))
	}
	intake := ledgerapp.NewReceiptIntakeService(extractor, cfg.Receipt.Timeout, log)

	expenseService := ledgerapp.NewExpenseService(vehicleRepo, expenseRepo, bankRepo, processor, log)
	expenseService.SetLedgerMetrics(ledgerMetrics)
	commissionService := ledgerapp.NewCommissionService(vehicleRepo, employeeRepo, roleRepo, commissionRepo, log)
	commissionService.SetLedgerMetrics(ledgerMetrics)
	profitService := ledgerapp.NewProfitService(vehicleRepo, expenseService, commissionRepo)
	exportService := ledgerapp.NewExportService(profitService, export.NewLedgerWorkbook(), cfg.App.Currency)

	// HTTP
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
		middleware.Dealer(uuid.MustParse(cfg.App.DefaultDealerID)),
		middleware.SpanEnricher(),
		middleware.HTTPMetrics(providers.metrics),
		middleware.Secure(),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSOrigins)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	engine.GET("/health", handler.NewHealthHandler(cfg.App.Name, sqlDB).Health)

	r := router.NewRouter(engine)
	router.RegisterLedger(r, router.LedgerHandlers{
		Vehicles:    handler.NewVehicleHandler(ledgerapp.NewVehicleService(vehicleRepo)),
		Employees:   handler.NewEmployeeHandler(ledgerapp.NewEmployeeService(employeeRepo)),
		Expenses:    handler.NewExpenseHandler(expenseService, intake, cfg.Receipt.MaxImageBytes),
		Commissions: handler.NewCommissionHandler(commissionService),
		Roles:       handler.NewRoleHandler(ledgerapp.NewCommissionRoleService(roleRepo)),
		Profit:      handler.NewProfitHandler(profitService, exportService),
		Receipts:    handler.NewReceiptHandler(intake, cfg.Receipt.MaxImageBytes),
		Outbox:      handler.NewOutboxHandler(eventapp.NewOutboxService(outboxRepo, log)),
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

type telemetryProviders struct {
	traces  *telemetry.TracerProvider
	metrics *telemetry.MeterProvider
	logs    *telemetry.LoggerProvider
}

// startTelemetry builds the OTLP providers. A provider that fails to start
// is replaced by its disabled form so the server still comes up.
func startTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *telemetryProviders {
	t := cfg.Telemetry
	p := &telemetryProviders{}

	var err error
	p.traces, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		log.Warn("Tracing disabled", zap.Error(err))
		p.traces, _ = telemetry.NewTracerProvider(ctx, telemetry.Config{}, log)
	}

	p.metrics, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ExportInterval:    t.MetricsInterval,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		log.Warn("Metrics disabled", zap.Error(err))
		p.metrics, _ = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{}, log)
	}

	p.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           t.Enabled && t.LogsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		log.Warn("Log export disabled", zap.Error(err))
		p.logs, _ = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{}, log)
	}
	return p
}

func (p *telemetryProviders) shutdown(log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := errors.Join(p.logs.Shutdown(ctx), p.metrics.Shutdown(ctx), p.traces.Shutdown(ctx)); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}
}
