package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LedgerPoster mirrors manual vehicle expenses into the company ledger
type LedgerPoster struct {
	categoryRepo ledger.AccountCategoryRepository
	postingRepo  ledger.LedgerPostingRepository
	metrics      *telemetry.LedgerMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewLedgerPoster creates a new LedgerPoster
func NewLedgerPoster(
	categoryRepo ledger.AccountCategoryRepository,
	postingRepo ledger.LedgerPostingRepository,
	logger *zap.Logger,
) *LedgerPoster {
	return &LedgerPoster{
		categoryRepo: categoryRepo,
		postingRepo:  postingRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// SetLedgerMetrics sets the metrics recorder
func (p *LedgerPoster) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	p.metrics = m
}

// PostToCompanyLedger writes the company posting for expense. vehicle may be
// nil, in which case the posting is labelled with the generic vehicle name.
// Posting the same expense twice returns the existing posting.
func (p *LedgerPoster) PostToCompanyLedger(ctx context.Context, vehicle *ledger.Vehicle, expense *ledger.Expense) (*ledger.LedgerPosting, error) {
	log := logger.Enrich(ctx, p.logger).With(zap.String("expense_id", expense.ID.String()))

	existing, err := p.postingRepo.FindBySourceExpense(ctx, expense.DealerID, expense.ID)
	switch {
	case err == nil:
		p.metrics.RecordMirrorPosting(ctx, telemetry.MirrorOutcomeDuplicate)
		log.Debug("company posting already exists", zap.String("posting_id", existing.ID.String()))
		return existing, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, p.fail(ctx, fmt.Errorf("check existing posting: %w", err))
	}

	categoryName := ledger.CompanyCategoryFor(expense.Category)
	category, err := p.categoryRepo.Resolve(ctx, expense.DealerID, categoryName)
	if err != nil {
		return nil, p.fail(ctx, fmt.Errorf("resolve category %s: %w", categoryName, err))
	}
	if category == nil {
		log.Warn("no company category registered, posting uncategorized", zap.String("category", categoryName))
	}

	posting, err := ledger.NewLedgerPosting(vehicle, expense, category, p.now())
	if err != nil {
		return nil, err
	}

	if err := p.postingRepo.Create(ctx, posting); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost a race with another delivery of the same event.
			existing, findErr := p.postingRepo.FindBySourceExpense(ctx, expense.DealerID, expense.ID)
			if findErr == nil {
				p.metrics.RecordMirrorPosting(ctx, telemetry.MirrorOutcomeDuplicate)
				return existing, nil
			}
			err = findErr
		}
		return nil, p.fail(ctx, fmt.Errorf("insert posting: %w", err))
	}

	p.metrics.RecordMirrorPosting(ctx, telemetry.MirrorOutcomeBooked)
	log.Info("company ledger posting booked",
		zap.String("posting_id", posting.ID.String()),
		zap.String("category", posting.CategoryName),
		zap.String("amount", posting.Amount.String()),
	)
	return posting, nil
}

func (p *LedgerPoster) fail(ctx context.Context, err error) error {
	p.metrics.RecordMirrorPosting(ctx, telemetry.MirrorOutcomeFailed)
	return shared.NewMirrorPostingFailure(err)
}
