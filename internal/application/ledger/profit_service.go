package ledger

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfitService recomputes a vehicle's profitability on every read
type ProfitService struct {
	vehicleRepo    ledger.VehicleRepository
	expenses       *ExpenseService
	commissionRepo ledger.CommissionRepository
}

// NewProfitService creates a new ProfitService
func NewProfitService(vehicleRepo ledger.VehicleRepository, expenses *ExpenseService, commissionRepo ledger.CommissionRepository) *ProfitService {
	return &ProfitService{vehicleRepo: vehicleRepo, expenses: expenses, commissionRepo: commissionRepo}
}

// GetProfitSummary loads the vehicle, its merged expenses and its commissions
func (s *ProfitService) GetProfitSummary(ctx context.Context, dealerID, vehicleID uuid.UUID) (*ProfitSummaryResponse, error) {
	report, err := s.buildReport(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, err
	}
	resp := ToProfitSummaryResponse(report.Summary)
	return &resp, nil
}

func (s *ProfitService) buildReport(ctx context.Context, dealerID, vehicleID uuid.UUID) (*ledger.VehicleLedgerReport, error) {
	vehicle, err := s.vehicleRepo.FindByIDForDealer(ctx, dealerID, vehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.NewPersistenceFailure("load vehicle", err)
	}
	expenses, err := s.expenses.mergedExpenses(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, err
	}
	commissions, err := s.commissionRepo.FindByVehicle(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, shared.NewPersistenceFailure("load commissions", err)
	}
	return &ledger.VehicleLedgerReport{
		Vehicle:     *vehicle,
		Expenses:    expenses,
		Commissions: commissions,
		Summary:     ledger.ComputeProfitSummary(*vehicle, expenses, commissions),
		GeneratedAt: time.Now(),
	}, nil
}

// ExportService renders a vehicle's ledger into a downloadable document
type ExportService struct {
	profit   *ProfitService
	renderer ledger.ReportRenderer
	currency string
}

// NewExportService creates a new ExportService
func NewExportService(profit *ProfitService, renderer ledger.ReportRenderer, currency string) *ExportService {
	return &ExportService{profit: profit, renderer: renderer, currency: currency}
}

// ExportVehicleLedger writes the report for vehicleID to w
func (s *ExportService) ExportVehicleLedger(ctx context.Context, dealerID, vehicleID uuid.UUID, w io.Writer) error {
	report, err := s.profit.buildReport(ctx, dealerID, vehicleID)
	if err != nil {
		return err
	}
	report.Currency = s.currency
	return s.renderer.Render(ctx, w, *report)
}

// ContentType returns the MIME type of the rendered document
func (s *ExportService) ContentType() string {
	return s.renderer.ContentType()
}

// FileName returns a download name for the vehicle's report
func (s *ExportService) FileName(vehicleID uuid.UUID) string {
	return "vehicle-ledger-" + vehicleID.String() + s.renderer.FileExtension()
}
