package ledger

import (
	"testing"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// newCamry returns the 2019 Toyota Camry bought for 8000 and sold for 12500
func newCamry(t *testing.T, dealerID uuid.UUID) *ledger.Vehicle {
	t.Helper()
	v, err := ledger.NewVehicle(dealerID, 2019, "Toyota", "Camry", "4T1B11HK5KU000001", dec("8000"), dec("12500"))
	require.NoError(t, err)
	return v
}

func newManual(t *testing.T, v *ledger.Vehicle, description, amount, category string, date time.Time) *ledger.Expense {
	t.Helper()
	e, err := ledger.NewManualExpense(v, ledger.ManualExpenseInput{
		Description: description,
		Amount:      decPtr(amount),
		Category:    category,
		Date:        &date,
	})
	require.NoError(t, err)
	return e
}

func newBooked(v *ledger.Vehicle, merchant, amount string, date time.Time) ledger.BankTransaction {
	vehicleID := v.ID
	return ledger.BankTransaction{
		ID:              uuid.New(),
		DealerID:        v.DealerID,
		VehicleID:       &vehicleID,
		MerchantName:    merchant,
		Amount:          dec(amount),
		TransactionDate: date,
		Status:          ledger.BankTransactionStatusBooked,
		CreatedAt:       date,
	}
}
