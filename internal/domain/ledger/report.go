package ledger

import (
	"context"
	"io"
	"time"
)

// VehicleLedgerReport is everything recorded against one vehicle, as of GeneratedAt
type VehicleLedgerReport struct {
	Vehicle     Vehicle
	Expenses    []Expense
	Commissions []Commission
	Summary     ProfitSummary
	Currency    string
	GeneratedAt time.Time
}

// ReportRenderer writes a vehicle ledger report in some document format
type ReportRenderer interface {
	Render(ctx context.Context, w io.Writer, report VehicleLedgerReport) error
	ContentType() string
	FileExtension() string
}
