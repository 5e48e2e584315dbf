package ledger

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseSource tells where an expense row came from
type ExpenseSource string

const (
	ExpenseSourceManual   ExpenseSource = "manual"
	ExpenseSourceBankFeed ExpenseSource = "bank_feed"
)

// ExpenseCategory is the dealership-facing cost taxonomy
type ExpenseCategory string

const (
	ExpenseCategoryRepair     ExpenseCategory = "Repair"
	ExpenseCategoryParts      ExpenseCategory = "Parts"
	ExpenseCategoryDetail     ExpenseCategory = "Detail"
	ExpenseCategoryTransport  ExpenseCategory = "Transport"
	ExpenseCategoryInspection ExpenseCategory = "Inspection"
	ExpenseCategoryFuel       ExpenseCategory = "Fuel"
	ExpenseCategoryOther      ExpenseCategory = "Other"

	// ExpenseCategoryBankTransaction marks bank feed rows, which carry no category
	ExpenseCategoryBankTransaction ExpenseCategory = "Bank Transaction"
)

// ManualCategories lists the categories a user can pick for a manual expense
var ManualCategories = []ExpenseCategory{
	ExpenseCategoryRepair,
	ExpenseCategoryParts,
	ExpenseCategoryDetail,
	ExpenseCategoryTransport,
	ExpenseCategoryInspection,
	ExpenseCategoryFuel,
	ExpenseCategoryOther,
}

// ParseExpenseCategory matches s case-insensitively against the manual
// categories. Blank input yields Other.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExpenseCategoryOther, nil
	}
	for _, c := range ManualCategories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", shared.NewDomainError(shared.CodeValidation, "Unknown expense category: "+s)
}

func (c ExpenseCategory) String() string {
	return string(c)
}

const maxDescriptionLength = 500

// Expense is a single cost attributed to a vehicle
type Expense struct {
	shared.DealerAggregateRoot
	VehicleID   uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    ExpenseCategory
	Date        time.Time
	Source      ExpenseSource
	ReceiptURL  string
}

// ManualExpenseInput carries the user-entered fields for a new expense
type ManualExpenseInput struct {
	Description string
	Amount      *decimal.Decimal
	Category    string
	Date        *time.Time
	ReceiptURL  string
}

// NewManualExpense validates input and creates a manual expense for vehicle.
// A ManualExpenseCreated event is recorded for the company ledger mirror.
func NewManualExpense(vehicle *Vehicle, in ManualExpenseInput) (*Expense, error) {
	if vehicle == nil {
		return nil, shared.NewValidationError("Vehicle is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, shared.NewDomainError(shared.CodeValidation, "Description cannot exceed 500 characters")
	}
	if in.Amount == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Amount is required")
	}
	amount := RoundMoney(*in.Amount)
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Amount must be greater than zero")
	}
	category, err := ParseExpenseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	expense := &Expense{
		DealerAggregateRoot: shared.NewDealerAggregateRoot(vehicle.DealerID),
		VehicleID:           vehicle.ID,
		Description:         description,
		Amount:              amount,
		Category:            category,
		Date:                date,
		Source:              ExpenseSourceManual,
		ReceiptURL:          strings.TrimSpace(in.ReceiptURL),
	}
	expense.AddDomainEvent(NewManualExpenseCreatedEvent(expense))
	return expense, nil
}

// IsDeletable reports whether the ledger owns this row
func (e *Expense) IsDeletable() bool {
	return e.Source == ExpenseSourceManual
}

// BankTransactionStatusBooked marks a settled bank transaction
const BankTransactionStatusBooked = "booked"

// BankTransaction is a row from the external bank feed. The ledger never
// writes these; it only projects booked rows linked to a vehicle.
type BankTransaction struct {
	ID              uuid.UUID
	DealerID        uuid.UUID
	VehicleID       *uuid.UUID
	MerchantName    string
	Amount          decimal.Decimal
	TransactionDate time.Time
	Status          string
	CreatedAt       time.Time
}

// IsBooked reports whether the transaction is settled
func (t *BankTransaction) IsBooked() bool {
	return strings.EqualFold(t.Status, BankTransactionStatusBooked)
}

// ToExpense projects the transaction into the expense view. Debits are
// signed negative in the feed so the amount is normalized to its magnitude.
func (t *BankTransaction) ToExpense() Expense {
	var vehicleID uuid.UUID
	if t.VehicleID != nil {
		vehicleID = *t.VehicleID
	}
	return Expense{
		DealerAggregateRoot: shared.DealerAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        t.ID,
					CreatedAt: t.CreatedAt,
					UpdatedAt: t.CreatedAt,
				},
			},
			DealerID: t.DealerID,
		},
		VehicleID:   vehicleID,
		Description: t.MerchantName,
		Amount:      RoundMoney(t.Amount.Abs()),
		Category:    ExpenseCategoryBankTransaction,
		Date:        t.TransactionDate,
		Source:      ExpenseSourceBankFeed,
	}
}
