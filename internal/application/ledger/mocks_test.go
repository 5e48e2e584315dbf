package ledger

import (
	"context"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Vehicle, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAllForDealer(ctx context.Context, dealerID uuid.UUID) ([]ledger.Vehicle, error) {
	args := m.Called(ctx, dealerID)
	return args.Get(0).([]ledger.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *ledger.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Employee, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *ledger.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Expense, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.Expense, error) {
	args := m.Called(ctx, dealerID, vehicleID)
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveWithEvents(ctx context.Context, expense *ledger.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) DeleteForDealer(ctx context.Context, dealerID, id uuid.UUID) error {
	return m.Called(ctx, dealerID, id).Error(0)
}

type MockBankTransactionRepository struct {
	mock.Mock
}

func (m *MockBankTransactionRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.BankTransaction, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindBookedByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.BankTransaction, error) {
	args := m.Called(ctx, dealerID, vehicleID)
	return args.Get(0).([]ledger.BankTransaction), args.Error(1)
}

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Commission, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.Commission, error) {
	args := m.Called(ctx, dealerID, vehicleID)
	return args.Get(0).([]ledger.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, commission *ledger.Commission) error {
	return m.Called(ctx, commission).Error(0)
}

func (m *MockCommissionRepository) DeleteForDealer(ctx context.Context, dealerID, id uuid.UUID) error {
	return m.Called(ctx, dealerID, id).Error(0)
}

type MockCommissionRoleRepository struct {
	mock.Mock
}

func (m *MockCommissionRoleRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.CommissionRole, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CommissionRole), args.Error(1)
}

func (m *MockCommissionRoleRepository) FindAllForDealer(ctx context.Context, dealerID uuid.UUID) ([]ledger.CommissionRole, error) {
	args := m.Called(ctx, dealerID)
	return args.Get(0).([]ledger.CommissionRole), args.Error(1)
}

func (m *MockCommissionRoleRepository) ExistsByName(ctx context.Context, dealerID uuid.UUID, roleName string) (bool, error) {
	args := m.Called(ctx, dealerID, roleName)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommissionRoleRepository) Save(ctx context.Context, role *ledger.CommissionRole) error {
	return m.Called(ctx, role).Error(0)
}

type MockAccountCategoryRepository struct {
	mock.Mock
}

func (m *MockAccountCategoryRepository) Resolve(ctx context.Context, dealerID uuid.UUID, name string) (*ledger.AccountCategory, error) {
	args := m.Called(ctx, dealerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountCategory), args.Error(1)
}

type MockLedgerPostingRepository struct {
	mock.Mock
}

func (m *MockLedgerPostingRepository) FindBySourceExpense(ctx context.Context, dealerID, expenseID uuid.UUID) (*ledger.LedgerPosting, error) {
	args := m.Called(ctx, dealerID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerPosting), args.Error(1)
}

func (m *MockLedgerPostingRepository) FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.LedgerPosting, error) {
	args := m.Called(ctx, dealerID, vehicleID)
	return args.Get(0).([]ledger.LedgerPosting), args.Error(1)
}

func (m *MockLedgerPostingRepository) Create(ctx context.Context, posting *ledger.LedgerPosting) error {
	return m.Called(ctx, posting).Error(0)
}

type MockEventDispatcher struct {
	mock.Mock
}

func (m *MockEventDispatcher) DeliverEvents(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockReceiptExtractor struct {
	mock.Mock
}

func (m *MockReceiptExtractor) Extract(ctx context.Context, image ledger.ReceiptImage) (*ledger.ReceiptSuggestion, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ReceiptSuggestion), args.Error(1)
}
