package export

import (
	"context"
	"fmt"
	"io"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the vehicle ledger workbook
const (
	SheetSummary     = "Summary"
	SheetExpenses    = "Expenses"
	SheetCommissions = "Commissions"
)

const dateLayout = "2006-01-02"

// LedgerWorkbook renders a vehicle ledger report as an .xlsx workbook
type LedgerWorkbook struct{}

// NewLedgerWorkbook creates a new LedgerWorkbook
func NewLedgerWorkbook() *LedgerWorkbook {
	return &LedgerWorkbook{}
}

// ContentType implements ledger.ReportRenderer
func (LedgerWorkbook) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension implements ledger.ReportRenderer
func (LedgerWorkbook) FileExtension() string {
	return ".xlsx"
}

// Render implements ledger.ReportRenderer
func (w LedgerWorkbook) Render(ctx context.Context, out io.Writer, report ledger.VehicleLedgerReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetExpenses); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetCommissions); err != nil {
		return err
	}

	cur := currencyFor(report.Currency)
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSummary(f, report, cur.Code, func(d decimal.Decimal) string { return formatMoney(d, cur) }, bold); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeExpenses(f, report.Expenses, bold); err != nil {
		return fmt.Errorf("expenses sheet: %w", err)
	}
	if err := writeCommissions(f, report.Commissions, bold); err != nil {
		return fmt.Errorf("commissions sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f.Write(out)
}

func writeSummary(f *excelize.File, r ledger.VehicleLedgerReport, code string, display func(decimal.Decimal) string, bold int) error {
	s := r.Summary
	rows := [][]any{
		{"Vehicle", r.Vehicle.DisplayName()},
		{"VIN", r.Vehicle.VIN},
		{"Currency", code},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Line", "Amount", "Display"},
		{"Sale price", cellAmount(s.SalePrice), display(s.SalePrice)},
		{"Purchase price", cellAmount(s.PurchasePrice), display(s.PurchasePrice)},
		{"Total expenses", cellAmount(s.TotalExpenses), display(s.TotalExpenses)},
		{"Total cost", cellAmount(s.TotalCost), display(s.TotalCost)},
		{"Gross profit", cellAmount(s.GrossProfit), display(s.GrossProfit)},
		{"Total commissions", cellAmount(s.TotalCommissions), display(s.TotalCommissions)},
		{"Net profit", cellAmount(s.NetProfit), display(s.NetProfit)},
	}
	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A6", "C6", bold); err != nil {
		return err
	}
	return f.SetCellStyle(SheetSummary, "A13", "C13", bold)
}

func writeExpenses(f *excelize.File, expenses []ledger.Expense, bold int) error {
	rows := make([][]any, 0, len(expenses)+1)
	rows = append(rows, []any{"Date", "Description", "Category", "Source", "Amount"})
	for i := range expenses {
		e := &expenses[i]
		rows = append(rows, []any{
			e.Date.Format(dateLayout),
			e.Description,
			e.Category.String(),
			string(e.Source),
			cellAmount(e.Amount),
		})
	}
	if err := writeRows(f, SheetExpenses, rows); err != nil {
		return err
	}
	return f.SetCellStyle(SheetExpenses, "A1", "E1", bold)
}

func writeCommissions(f *excelize.File, commissions []ledger.Commission, bold int) error {
	rows := make([][]any, 0, len(commissions)+1)
	rows = append(rows, []any{"Granted", "Employee", "Role", "Tier", "Rate", "Amount"})
	for i := range commissions {
		c := &commissions[i]
		tier := "Helper"
		if c.IsSpecialist {
			tier = "Specialist"
		}
		if c.OverrideRate != nil {
			tier += " (override)"
		}
		rate, _ := c.RateUsed.Float64()
		rows = append(rows, []any{
			c.CreatedAt.Format(dateLayout),
			c.EmployeeName,
			c.RoleName,
			tier,
			rate,
			cellAmount(c.Amount),
		})
	}
	if err := writeRows(f, SheetCommissions, rows); err != nil {
		return err
	}
	return f.SetCellStyle(SheetCommissions, "A1", "F1", bold)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellAmount converts to float64 for a numeric spreadsheet cell
func cellAmount(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

var _ ledger.ReportRenderer = LedgerWorkbook{}
