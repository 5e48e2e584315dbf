package ledger_test

import (
	"testing"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyCategoryFor(t *testing.T) {
	tests := map[ledger.ExpenseCategory]string{
		ledger.ExpenseCategoryRepair:          "Reconditioning",
		ledger.ExpenseCategoryParts:           "Reconditioning",
		ledger.ExpenseCategoryDetail:          "Reconditioning",
		ledger.ExpenseCategoryTransport:       "Reconditioning",
		ledger.ExpenseCategoryInspection:      "Reconditioning",
		ledger.ExpenseCategoryFuel:            "Fuel",
		ledger.ExpenseCategoryOther:           "Other",
		ledger.ExpenseCategoryBankTransaction: "Other",
		ledger.ExpenseCategory("Marketing"):   "Other",
	}
	for in, want := range tests {
		assert.Equal(t, want, ledger.CompanyCategoryFor(in), "category %q", in)
	}
}

func TestVehicle_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		vehicle *ledger.Vehicle
		want    string
	}{
		{name: "full", vehicle: &ledger.Vehicle{Year: 2018, Make: "Honda", Model: "Civic"}, want: "2018 Honda Civic"},
		{name: "no year", vehicle: &ledger.Vehicle{Make: "Ford", Model: "F-150"}, want: "Ford F-150"},
		{name: "only model", vehicle: &ledger.Vehicle{Model: " Tacoma "}, want: "Tacoma"},
		{name: "blank", vehicle: &ledger.Vehicle{Make: "  "}, want: "Vehicle"},
		{name: "nil", vehicle: nil, want: "Vehicle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.vehicle.DisplayName())
		})
	}
}

func TestNewLedgerPosting(t *testing.T) {
	vehicle := newTestVehicle(t, "8000", "12500")
	expenseDate := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	expense, err := ledger.NewManualExpense(vehicle, ledger.ManualExpenseInput{
		Description: "Brake pads", Amount: decPtr("300"), Category: "Repair", Date: &expenseDate,
	})
	require.NoError(t, err)
	postedAt := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	t.Run("categorized", func(t *testing.T) {
		cat := &ledger.AccountCategory{ID: uuid.New(), Name: "Reconditioning"}
		p, err := ledger.NewLedgerPosting(vehicle, expense, cat, postedAt)
		require.NoError(t, err)

		assert.Equal(t, "Brake pads (2018 Honda Civic)", p.Description)
		assert.Equal(t, "2018 Honda Civic", p.Vendor)
		assert.True(t, dec("300").Equal(p.Amount))
		assert.Equal(t, postedAt, p.ExpenseDate)
		assert.NotEqual(t, expenseDate, p.ExpenseDate)
		require.NotNil(t, p.CategoryID)
		assert.Equal(t, cat.ID, *p.CategoryID)
		assert.Equal(t, "booked", p.Status)
		assert.Equal(t, expense.ID, p.SourceExpenseID)
		assert.Equal(t, vehicle.DealerID, p.DealerID)
	})

	t.Run("uncategorized when registry has no row", func(t *testing.T) {
		p, err := ledger.NewLedgerPosting(vehicle, expense, nil, postedAt)
		require.NoError(t, err)
		assert.Nil(t, p.CategoryID)
		assert.Equal(t, "Reconditioning", p.CategoryName)
	})

	t.Run("unknown vehicle falls back", func(t *testing.T) {
		p, err := ledger.NewLedgerPosting(nil, expense, nil, postedAt)
		require.NoError(t, err)
		assert.Equal(t, "Brake pads (Vehicle)", p.Description)
		assert.Equal(t, "Vehicle", p.Vendor)
	})

	t.Run("bank rows are not mirrored", func(t *testing.T) {
		bank := ledger.BankTransaction{ID: uuid.New(), Amount: dec("-5"), Status: "booked"}
		e := bank.ToExpense()
		_, err := ledger.NewLedgerPosting(vehicle, &e, nil, postedAt)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}
