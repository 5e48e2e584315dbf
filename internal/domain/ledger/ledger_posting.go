package ledger

import (
	"fmt"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company chart-of-accounts category names
const (
	AccountCategoryReconditioning = "Reconditioning"
	AccountCategoryFuel           = "Fuel"
	AccountCategoryOther          = "Other"
)

// LedgerPostingStatusBooked is the only status a posting is written with
const LedgerPostingStatusBooked = "booked"

var companyCategoryMap = map[ExpenseCategory]string{
	ExpenseCategoryRepair:     AccountCategoryReconditioning,
	ExpenseCategoryParts:      AccountCategoryReconditioning,
	ExpenseCategoryDetail:     AccountCategoryReconditioning,
	ExpenseCategoryTransport:  AccountCategoryReconditioning,
	ExpenseCategoryInspection: AccountCategoryReconditioning,
	ExpenseCategoryFuel:       AccountCategoryFuel,
	ExpenseCategoryOther:      AccountCategoryOther,
}

// CompanyCategoryFor maps a dealership expense category to the company
// chart-of-accounts. Anything unmapped goes to Other.
func CompanyCategoryFor(c ExpenseCategory) string {
	if name, ok := companyCategoryMap[c]; ok {
		return name
	}
	return AccountCategoryOther
}

// AccountCategory is a row of the company category registry. A nil
// DealerID marks a global default shared by all dealerships.
type AccountCategory struct {
	ID       uuid.UUID
	DealerID *uuid.UUID
	Name     string
}

// LedgerPosting is the company-wide mirror of a manual vehicle expense.
// Postings are write-once.
type LedgerPosting struct {
	shared.BaseEntity
	DealerID        uuid.UUID
	SourceExpenseID uuid.UUID
	VehicleID       uuid.UUID
	Description     string
	Amount          decimal.Decimal
	ExpenseDate     time.Time
	Vendor          string
	CategoryID      *uuid.UUID
	CategoryName    string
	Status          string
}

// NewLedgerPosting builds the company ledger entry for expense on vehicle.
// category may be nil when the registry has no matching row; the posting
// is still written, uncategorized.
//
// ExpenseDate is postedAt, not the expense's own date. A cost entered late
// therefore lands in the period it was posted, not the period it was incurred.
func NewLedgerPosting(vehicle *Vehicle, expense *Expense, category *AccountCategory, postedAt time.Time) (*LedgerPosting, error) {
	if expense == nil {
		return nil, shared.NewValidationError("Expense is required")
	}
	if expense.Source != ExpenseSourceManual {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Only manual expenses are mirrored to the company ledger")
	}

	label := vehicle.DisplayName()
	posting := &LedgerPosting{
		BaseEntity:      shared.NewBaseEntity(),
		DealerID:        expense.DealerID,
		SourceExpenseID: expense.ID,
		VehicleID:       expense.VehicleID,
		Description:     fmt.Sprintf("%s (%s)", expense.Description, label),
		Amount:          expense.Amount,
		ExpenseDate:     postedAt,
		Vendor:          label,
		CategoryName:    CompanyCategoryFor(expense.Category),
		Status:          LedgerPostingStatusBooked,
	}
	if category != nil {
		id := category.ID
		posting.CategoryID = &id
		posting.CategoryName = category.Name
	}
	return posting, nil
}
