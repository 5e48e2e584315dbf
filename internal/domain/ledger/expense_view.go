package ledger

import "sort"

// MergeExpenses builds the per-vehicle expense view: manual rows followed by
// booked bank rows, each in the order given, then stably sorted by date
// descending so equal dates keep that insertion order.
func MergeExpenses(manual []Expense, bank []BankTransaction) []Expense {
	merged := make([]Expense, 0, len(manual)+len(bank))
	merged = append(merged, manual...)
	for i := range bank {
		if !bank[i].IsBooked() {
			continue
		}
		merged = append(merged, bank[i].ToExpense())
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	return merged
}
