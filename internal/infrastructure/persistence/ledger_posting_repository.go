package persistence

import (
	"context"
	"errors"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerPostingRepository implements ledger.LedgerPostingRepository using GORM
type GormLedgerPostingRepository struct {
	db *gorm.DB
}

// NewGormLedgerPostingRepository creates a new GormLedgerPostingRepository
func NewGormLedgerPostingRepository(db *gorm.DB) *GormLedgerPostingRepository {
	return &GormLedgerPostingRepository{db: db}
}

// FindBySourceExpense finds the posting mirrored from an expense
func (r *GormLedgerPostingRepository) FindBySourceExpense(ctx context.Context, dealerID, expenseID uuid.UUID) (*ledger.LedgerPosting, error) {
	var model models.LedgerPostingModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ? AND source_expense_id = ?", dealerID, expenseID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVehicle returns the vehicle's postings in posting order
func (r *GormLedgerPostingRepository) FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.LedgerPosting, error) {
	var rows []models.LedgerPostingModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ? AND vehicle_id = ?", dealerID, vehicleID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.LedgerPosting, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Create inserts a posting; the unique source_expense_id index turns a
// second mirror of the same expense into shared.ErrAlreadyExists.
func (r *GormLedgerPostingRepository) Create(ctx context.Context, posting *ledger.LedgerPosting) error {
	err := r.db.WithContext(ctx).Create(models.LedgerPostingModelFromDomain(posting)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

var _ ledger.LedgerPostingRepository = (*GormLedgerPostingRepository)(nil)
