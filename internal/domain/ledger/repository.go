package ledger

import (
	"context"

	"github.com/google/uuid"
)

// VehicleRepository persists vehicles
type VehicleRepository interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*Vehicle, error)
	FindAllForDealer(ctx context.Context, dealerID uuid.UUID) ([]Vehicle, error)
	Save(ctx context.Context, vehicle *Vehicle) error
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*Employee, error)
	Save(ctx context.Context, employee *Employee) error
}

// ExpenseRepository persists manual expenses
type ExpenseRepository interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*Expense, error)
	// FindByVehicle returns manual expenses in insertion order
	FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]Expense, error)
	// SaveWithEvents writes the expense and its pending domain events to the
	// outbox in one transaction
	SaveWithEvents(ctx context.Context, expense *Expense) error
	DeleteForDealer(ctx context.Context, dealerID, id uuid.UUID) error
}

// BankTransactionRepository reads the bank feed
type BankTransactionRepository interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*BankTransaction, error)
	// FindBookedByVehicle returns booked transactions linked to the vehicle in insertion order
	FindBookedByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]BankTransaction, error)
}

// CommissionRepository persists commissions
type CommissionRepository interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*Commission, error)
	FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]Commission, error)
	Save(ctx context.Context, commission *Commission) error
	DeleteForDealer(ctx context.Context, dealerID, id uuid.UUID) error
}

// CommissionRoleRepository persists commission roles
type CommissionRoleRepository interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*CommissionRole, error)
	FindAllForDealer(ctx context.Context, dealerID uuid.UUID) ([]CommissionRole, error)
	ExistsByName(ctx context.Context, dealerID uuid.UUID, roleName string) (bool, error)
	Save(ctx context.Context, role *CommissionRole) error
}

// AccountCategoryRepository reads the company category registry
type AccountCategoryRepository interface {
	// Resolve returns the dealer's row for name, else the global default
	// row, else nil with no error
	Resolve(ctx context.Context, dealerID uuid.UUID, name string) (*AccountCategory, error)
}

// LedgerPostingRepository persists company ledger postings
type LedgerPostingRepository interface {
	FindBySourceExpense(ctx context.Context, dealerID, expenseID uuid.UUID) (*LedgerPosting, error)
	FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]LedgerPosting, error)
	// Create inserts a posting. It returns shared.ErrAlreadyExists when a
	// posting for the same source expense is already stored.
	Create(ctx context.Context, posting *LedgerPosting) error
}
