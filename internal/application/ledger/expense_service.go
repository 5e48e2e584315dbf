package ledger

import (
	"context"
	"errors"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ExpenseService owns the merged expense view and manual expense writes
type ExpenseService struct {
	vehicleRepo ledger.VehicleRepository
	expenseRepo ledger.ExpenseRepository
	bankRepo    ledger.BankTransactionRepository
	dispatcher  shared.EventDispatcher
	metrics     *telemetry.LedgerMetrics
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService. dispatcher may be nil, in
// which case the mirror posting waits for the outbox poller.
func NewExpenseService(
	vehicleRepo ledger.VehicleRepository,
	expenseRepo ledger.ExpenseRepository,
	bankRepo ledger.BankTransactionRepository,
	dispatcher shared.EventDispatcher,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		vehicleRepo: vehicleRepo,
		expenseRepo: expenseRepo,
		bankRepo:    bankRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// SetLedgerMetrics sets the metrics recorder
func (s *ExpenseService) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// ListExpenses returns the vehicle's manual expenses and booked bank
// transactions, newest first. An unknown vehicle yields an empty list.
func (s *ExpenseService) ListExpenses(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ExpenseResponse, error) {
	merged, err := s.mergedExpenses(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, err
	}
	return ToExpenseResponses(merged), nil
}

func (s *ExpenseService) mergedExpenses(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.Expense, error) {
	manual, err := s.expenseRepo.FindByVehicle(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, shared.NewPersistenceFailure("load expenses", err)
	}
	bank, err := s.bankRepo.FindBookedByVehicle(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, shared.NewPersistenceFailure("load bank transactions", err)
	}
	return ledger.MergeExpenses(manual, bank), nil
}

// GetExpense returns a manual expense or a booked bank transaction by id
func (s *ExpenseService) GetExpense(ctx context.Context, dealerID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForDealer(ctx, dealerID, id)
	if err == nil {
		resp := ToExpenseResponse(expense)
		return &resp, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewPersistenceFailure("load expense", err)
	}

	txn, err := s.bankRepo.FindByIDForDealer(ctx, dealerID, id)
	if err != nil {
		return nil, err
	}
	projected := txn.ToExpense()
	resp := ToExpenseResponse(&projected)
	return &resp, nil
}

// CreateManualExpense validates and stores a manual expense. The expense
// and its mirror event commit together; the mirror posting itself is
// attempted right after and any failure there is left to the outbox retry.
func (s *ExpenseService) CreateManualExpense(ctx context.Context, dealerID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "expense", "create_manual",
		attribute.String(telemetry.SpanAttrDealerID, dealerID.String()),
		attribute.String(telemetry.SpanAttrVehicleID, req.VehicleID.String()),
	)
	defer span.End()

	vehicle, err := s.vehicleRepo.FindByIDForDealer(ctx, dealerID, req.VehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("Vehicle not found")
		}
		telemetry.RecordError(span, err)
		return nil, shared.NewPersistenceFailure("load vehicle", err)
	}

	expense, err := ledger.NewManualExpense(vehicle, ledger.ManualExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		return nil, err
	}
	events := expense.GetDomainEvents()

	if err := s.expenseRepo.SaveWithEvents(ctx, expense); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewPersistenceFailure("save expense", err)
	}
	span.SetAttributes(attribute.String(telemetry.SpanAttrExpenseID, expense.ID.String()))
	s.metrics.RecordExpenseCreated(ctx, expense.Category.String())

	log := logger.Enrich(ctx, s.logger)
	log.Info("manual expense created",
		zap.String("expense_id", expense.ID.String()),
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("category", expense.Category.String()),
		zap.String("amount", expense.Amount.String()),
	)

	if s.dispatcher != nil {
		if err := s.dispatcher.DeliverEvents(ctx, events...); err != nil {
			log.Warn("company ledger mirror deferred to retry",
				zap.String("expense_id", expense.ID.String()),
				zap.Error(shared.NewMirrorPostingFailure(err)),
			)
		}
	}

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// DeleteExpense removes a manual expense. Bank feed rows cannot be deleted
// here. The company ledger posting for the expense is left in place.
func (s *ExpenseService) DeleteExpense(ctx context.Context, dealerID, id uuid.UUID) error {
	err := s.expenseRepo.DeleteForDealer(ctx, dealerID, id)
	if err == nil {
		logger.Enrich(ctx, s.logger).Info("manual expense deleted", zap.String("expense_id", id.String()))
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return shared.NewPersistenceFailure("delete expense", err)
	}

	if _, bankErr := s.bankRepo.FindByIDForDealer(ctx, dealerID, id); bankErr == nil {
		return shared.NewIllegalDeletion("Bank transactions cannot be deleted from the vehicle ledger")
	} else if !errors.Is(bankErr, shared.ErrNotFound) {
		return shared.NewPersistenceFailure("load bank transaction", bankErr)
	}
	return shared.ErrNotFound
}
