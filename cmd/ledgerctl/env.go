package main

import (
	"context"
	"fmt"
	"os"

	eventapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/event"
	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/bankfeed"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/cache"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/config"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/event"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/export"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// env is the service graph a command runs against
type env struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *persistence.Database
	backends  *cache.Backends
	outbox    *eventapp.OutboxService
	processor *event.OutboxProcessor
	profit    *ledgerapp.ProfitService
	export    *ledgerapp.ExportService
	bankFeed  func(dryRun bool) *bankfeed.Importer
}

func openEnv(ctx context.Context) (*env, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Logs go to stderr so command output stays clean on stdout
	log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	backends, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open idempotency store: %w", err)
	}

	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB, event.NewOutboxPublisher(serializer, cfg.Event.MaxRetries))
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)

	poster := ledgerapp.NewLedgerPoster(
		persistence.NewGormAccountCategoryRepository(db.DB),
		persistence.NewGormLedgerPostingRepository(db.DB),
		log,
	)
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewIdempotentHandler(
		ledgerapp.NewMirrorPostingHandler(vehicleRepo, poster, log),
		backends.Idempotency,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{TTL: cfg.Event.IdempotencyTTL, Enabled: true}),
	))

	var opts []event.OutboxProcessorOption
	if backends.Leaser != nil {
		opts = append(opts, event.WithBatchLocker(backends.Leaser))
	}
	processor := event.NewOutboxProcessor(outboxRepo, bus, serializer, event.OutboxProcessorConfig{
		BatchSize:  cfg.Event.BatchSize,
		StuckAfter: cfg.Event.StuckAfter,
		LeaseTTL:   cfg.Event.LeaseTTL,
	}, log, opts...)

	bankRepo := persistence.NewGormBankTransactionRepository(db.DB)
	expenses := ledgerapp.NewExpenseService(vehicleRepo, expenseRepo, bankRepo, nil, log)
	profit := ledgerapp.NewProfitService(vehicleRepo, expenses, commissionRepo)

	return &env{
		cfg:       cfg,
		log:       log,
		db:        db,
		backends:  backends,
		outbox:    eventapp.NewOutboxService(outboxRepo, log),
		processor: processor,
		profit:    profit,
		export:    ledgerapp.NewExportService(profit, export.NewLedgerWorkbook(), cfg.App.Currency),
		bankFeed:  func(dryRun bool) *bankfeed.Importer {
			return bankfeed.NewImporter(bankRepo, vehicleRepo, log, bankfeed.WithDryRun(dryRun))
		},
	}, nil
}

func (e *env) Close() {
	_ = e.backends.Close()
	_ = e.db.Close()
	_ = e.log.Sync()
}

// dealerID resolves the -dealer flag, falling back to the configured default
func (e *env) dealerID(flagValue string) (uuid.UUID, error) {
	if flagValue == "" {
		flagValue = e.cfg.App.DefaultDealerID
	}
	id, err := uuid.Parse(flagValue)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid dealer id %q", flagValue)
	}
	return id, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
