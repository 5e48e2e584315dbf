package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBankTransactionRepository reads the bank feed table. Rows are written by
// the bank import process, never by this service.
type GormBankTransactionRepository struct {
	db *gorm.DB
}

// NewGormBankTransactionRepository creates a new GormBankTransactionRepository
func NewGormBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{db: db}
}

// FindByIDForDealer finds a bank transaction of the dealer
func (r *GormBankTransactionRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.BankTransaction, error) {
	var model models.BankTransactionModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ? AND id = ?", dealerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBookedByVehicle returns booked transactions linked to the vehicle
func (r *GormBankTransactionRepository) FindBookedByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.BankTransaction, error) {
	var rows []models.BankTransactionModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ? AND vehicle_id = ? AND LOWER(status) = ?",
			dealerID, vehicleID, strings.ToLower(ledger.BankTransactionStatusBooked)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	txns := make([]ledger.BankTransaction, len(rows))
	for i := range rows {
		txns[i] = *rows[i].ToDomain()
	}
	return txns, nil
}

// Save inserts a bank transaction. Used by the feed import tooling and tests.
func (r *GormBankTransactionRepository) Save(ctx context.Context, txn *ledger.BankTransaction) error {
	return r.db.WithContext(ctx).Create(models.BankTransactionModelFromDomain(txn)).Error
}

var _ ledger.BankTransactionRepository = (*GormBankTransactionRepository)(nil)
