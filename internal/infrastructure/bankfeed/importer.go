package bankfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Columns understood in a statement export. date, merchant and amount are required.
const (
	ColumnID       = "id"
	ColumnDate     = "date"
	ColumnMerchant = "merchant"
	ColumnAmount   = "amount"
	ColumnStatus   = "status"
	ColumnVehicle  = "vehicle_id"
)

var dateLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

// Store is where imported transactions go
type Store interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.BankTransaction, error)
	Save(ctx context.Context, txn *ledger.BankTransaction) error
}

// VehicleLookup confirms a linked vehicle belongs to the dealer
type VehicleLookup interface {
	FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Vehicle, error)
}

// Result summarizes an import run
type Result struct {
	TotalRows   int        `json:"total_rows"`
	Imported    int        `json:"imported"`
	Skipped     int        `json:"skipped"`
	Errors      []RowError `json:"errors,omitempty"`
	TotalErrors int        `json:"total_errors,omitempty"`
	IsTruncated bool       `json:"is_truncated,omitempty"`
}

// Importer turns statement rows into bank transactions
type Importer struct {
	store    Store
	vehicles VehicleLookup
	logger   *zap.Logger
	dryRun   bool
}

// ImporterOption configures an Importer
type ImporterOption func(*Importer)

// WithDryRun validates without writing
func WithDryRun(dryRun bool) ImporterOption {
	return func(i *Importer) {
		i.dryRun = dryRun
	}
}

// NewImporter creates an Importer
func NewImporter(store Store, vehicles VehicleLookup, logger *zap.Logger, opts ...ImporterOption) *Importer {
	i := &Importer{store: store, vehicles: vehicles, logger: logger}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import reads r and stores every valid row for dealerID. Rows without an
// id column get one derived from their content, so re-running the same file
// skips rows already stored instead of duplicating them. Invalid rows are
// reported and do not stop the run.
func (i *Importer) Import(ctx context.Context, dealerID uuid.UUID, r io.Reader) (*Result, error) {
	parser, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders(ColumnDate, ColumnMerchant, ColumnAmount); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	result := &Result{TotalRows: len(rows)}
	errs := NewErrorCollection(100)
	seen := make(map[uuid.UUID]int, len(rows))
	occurrences := make(map[uuid.UUID]int)

	for _, row := range rows {
		txn, ok := i.parseRow(ctx, dealerID, row, errs)
		if !ok {
			continue
		}
		if txn.ID == uuid.Nil {
			// identical lines are separate transactions; the occurrence
			// number keeps their ids distinct and stable across re-imports
			base := contentID(dealerID, txn.TransactionDate, txn.MerchantName, txn.Amount, txn.VehicleID, 0)
			n := occurrences[base]
			occurrences[base]++
			txn.ID = contentID(dealerID, txn.TransactionDate, txn.MerchantName, txn.Amount, txn.VehicleID, n)
		}
		if first, dup := seen[txn.ID]; dup {
			errs.Add(RowError{Row: row.LineNumber, Code: ErrCodeDuplicateInFile,
				Message: fmt.Sprintf("same transaction as row %d", first), Value: txn.ID.String()})
			continue
		}
		seen[txn.ID] = row.LineNumber

		_, err := i.store.FindByIDForDealer(ctx, dealerID, txn.ID)
		switch {
		case err == nil:
			result.Skipped++
			continue
		case !errors.Is(err, shared.ErrNotFound):
			return nil, fmt.Errorf("row %d: %w", row.LineNumber, err)
		}

		if i.dryRun {
			result.Imported++
			continue
		}
		if err := i.store.Save(ctx, txn); err != nil {
			errs.Add(RowError{Row: row.LineNumber, Code: ErrCodePersistence, Message: err.Error()})
			continue
		}
		result.Imported++
	}

	result.Errors = errs.Errors()
	result.TotalErrors = errs.TotalCount()
	result.IsTruncated = errs.IsTruncated()
	i.logger.Info("bank feed import finished",
		zap.String("dealer_id", dealerID.String()),
		zap.Bool("dry_run", i.dryRun),
		zap.Int("rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.TotalErrors),
	)
	return result, nil
}

func (i *Importer) parseRow(ctx context.Context, dealerID uuid.UUID, row *Row, errs *ErrorCollection) (*ledger.BankTransaction, bool) {
	before := errs.TotalCount()
	line := row.LineNumber

	date := parseDate(row.Get(ColumnDate))
	if row.Get(ColumnDate) == "" {
		errs.addRequired(line, ColumnDate)
	} else if date.IsZero() {
		errs.addFormat(line, ColumnDate, "YYYY-MM-DD", row.Get(ColumnDate))
	}

	merchant := row.Get(ColumnMerchant)
	if merchant == "" {
		errs.addRequired(line, ColumnMerchant)
	}

	var amount decimal.Decimal
	if raw := row.Get(ColumnAmount); raw == "" {
		errs.addRequired(line, ColumnAmount)
	} else if d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "")); err != nil {
		errs.addFormat(line, ColumnAmount, "a decimal number", raw)
	} else {
		amount = d.Round(2)
	}

	status := strings.ToLower(row.Get(ColumnStatus))
	if status == "" {
		status = ledger.BankTransactionStatusBooked
	}

	var vehicleID *uuid.UUID
	if raw := row.Get(ColumnVehicle); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errs.addFormat(line, ColumnVehicle, "a UUID", raw)
		} else if _, err := i.vehicles.FindByIDForDealer(ctx, dealerID, id); err != nil {
			errs.Add(RowError{Row: line, Column: ColumnVehicle, Code: ErrCodeReferenceNotFound,
				Message: fmt.Sprintf("vehicle '%s' not found", raw), Value: raw})
		} else {
			vehicleID = &id
		}
	}

	id := uuid.Nil
	if raw := row.Get(ColumnID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			errs.addFormat(line, ColumnID, "a UUID", raw)
		}
		id = parsed
	}

	if errs.TotalCount() > before {
		return nil, false
	}
	return &ledger.BankTransaction{
		ID:              id,
		DealerID:        dealerID,
		VehicleID:       vehicleID,
		MerchantName:    merchant,
		Amount:          amount,
		TransactionDate: date,
		Status:          status,
		CreatedAt:       time.Now(),
	}, true
}

func parseDate(raw string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// contentID derives a stable id from the fields that identify a statement
// line and its occurrence among identical lines of the same file
func contentID(dealerID uuid.UUID, date time.Time, merchant string, amount decimal.Decimal, vehicleID *uuid.UUID, occurrence int) uuid.UUID {
	vehicle := ""
	if vehicleID != nil {
		vehicle = vehicleID.String()
	}
	key := strings.Join([]string{
		date.Format("2006-01-02"),
		strings.ToLower(merchant),
		amount.StringFixed(2),
		vehicle,
		strconv.Itoa(occurrence),
	}, "|")
	return uuid.NewSHA1(dealerID, []byte(key))
}
