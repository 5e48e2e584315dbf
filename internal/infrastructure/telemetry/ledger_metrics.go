package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// Mirror posting outcomes.
const (
	MirrorOutcomeBooked    = "booked"
	MirrorOutcomeDuplicate = "duplicate"
	MirrorOutcomeFailed    = "failed"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LedgerMetrics counts ledger activity.
type LedgerMetrics struct {
	mirrorPostings   *Counter
	expensesCreated  *Counter
	commissionAmount *Histogram
}

// NewLedgerMetrics registers the ledger instruments on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	mirror, err := NewCounter(meter, "ledger_mirror_postings_total",
		"Company ledger mirror posting attempts by outcome", "{postings}")
	if err != nil {
		return nil, err
	}
	expenses, err := NewCounter(meter, "ledger_expenses_created_total",
		"Manual vehicle expenses recorded", "{expenses}")
	if err != nil {
		return nil, err
	}
	amounts, err := NewHistogram(meter, HistogramOpts{
		Name:        "ledger_commission_amount",
		Description: "Granted commission amounts",
		Unit:        "USD",
		Boundaries:  CommissionAmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &LedgerMetrics{mirrorPostings: mirror, expensesCreated: expenses, commissionAmount: amounts}, nil
}

// RecordMirrorPosting counts one posting attempt. Nil receivers are no-ops.
func (m *LedgerMetrics) RecordMirrorPosting(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.mirrorPostings.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordExpenseCreated counts a manual expense in the given category.
func (m *LedgerMetrics) RecordExpenseCreated(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.expensesCreated.Inc(ctx, AttrCategory.String(category))
}

// RecordCommission records the snapshotted commission amount.
func (m *LedgerMetrics) RecordCommission(ctx context.Context, amount decimal.Decimal, isSpecialist bool) {
	if m == nil {
		return
	}
	m.commissionAmount.Record(ctx, amount.InexactFloat64(), AttrSpecial.Bool(isSpecialist))
}
