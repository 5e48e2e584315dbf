package ledger

import (
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event and aggregate type names
const (
	EventTypeManualExpenseCreated = "ManualExpenseCreated"
	AggregateTypeExpense          = "Expense"
)

// ManualExpenseCreatedEvent is raised when a user adds a manual expense.
// It carries everything the company ledger mirror needs so delivery does
// not depend on the expense row still existing.
type ManualExpenseCreatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID   uuid.UUID       `json:"expense_id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	ExpenseDate time.Time       `json:"expense_date"`
}

// EventType returns the event type name
func (e *ManualExpenseCreatedEvent) EventType() string {
	return EventTypeManualExpenseCreated
}

// NewManualExpenseCreatedEvent creates a new ManualExpenseCreatedEvent
func NewManualExpenseCreatedEvent(expense *Expense) *ManualExpenseCreatedEvent {
	return &ManualExpenseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeManualExpenseCreated, AggregateTypeExpense, expense.ID, expense.DealerID),
		ExpenseID:       expense.ID,
		VehicleID:       expense.VehicleID,
		Description:     expense.Description,
		Amount:          expense.Amount,
		Category:        expense.Category,
		ExpenseDate:     expense.Date,
	}
}

// Expense rebuilds the expense as it was when the event was raised
func (e *ManualExpenseCreatedEvent) Expense() *Expense {
	exp := &Expense{
		DealerAggregateRoot: shared.DealerAggregateRoot{DealerID: e.DealerID()},
		VehicleID:           e.VehicleID,
		Description:         e.Description,
		Amount:              e.Amount,
		Category:            e.Category,
		Date:                e.ExpenseDate,
		Source:              ExpenseSourceManual,
	}
	exp.ID = e.ExpenseID
	exp.CreatedAt = e.OccurredAt()
	exp.UpdatedAt = e.OccurredAt()
	return exp
}
