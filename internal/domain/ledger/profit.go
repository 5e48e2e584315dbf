package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitSummary is the derived profitability of one vehicle. It is never
// stored; callers recompute it from the current records.
type ProfitSummary struct {
	VehicleID        uuid.UUID
	PurchasePrice    decimal.Decimal
	SalePrice        decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalCost        decimal.Decimal
	GrossProfit      decimal.Decimal
	TotalCommissions decimal.Decimal
	NetProfit        decimal.Decimal
	ExpenseCount     int
	CommissionCount  int
}

// ComputeProfitSummary derives totals from a vehicle, its merged expense
// view and its commissions. Expenses count toward gross profit; the
// commission amounts themselves were computed before expenses.
func ComputeProfitSummary(vehicle Vehicle, expenses []Expense, commissions []Commission) ProfitSummary {
	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}
	totalCommissions := decimal.Zero
	for i := range commissions {
		totalCommissions = totalCommissions.Add(commissions[i].Amount)
	}

	totalCost := vehicle.PurchasePrice.Add(totalExpenses)
	gross := vehicle.SalePrice.Sub(totalCost)

	return ProfitSummary{
		VehicleID:        vehicle.ID,
		PurchasePrice:    vehicle.PurchasePrice,
		SalePrice:        vehicle.SalePrice,
		TotalExpenses:    totalExpenses,
		TotalCost:        totalCost,
		GrossProfit:      gross,
		TotalCommissions: totalCommissions,
		NetProfit:        gross.Sub(totalCommissions),
		ExpenseCount:     len(expenses),
		CommissionCount:  len(commissions),
	}
}
