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

// GormCommissionRepository implements ledger.CommissionRepository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByIDForDealer finds a commission of the dealer
func (r *GormCommissionRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Commission, error) {
	var model models.CommissionModel
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

// FindByVehicle returns the vehicle's commissions in grant order
func (r *GormCommissionRepository) FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.Commission, error) {
	var rows []models.CommissionModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ? AND vehicle_id = ?", dealerID, vehicleID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.Commission, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts a commission. Commissions are immutable once granted.
func (r *GormCommissionRepository) Save(ctx context.Context, commission *ledger.Commission) error {
	return r.db.WithContext(ctx).Create(models.CommissionModelFromDomain(commission)).Error
}

// DeleteForDealer removes a commission. Missing rows yield shared.ErrNotFound.
func (r *GormCommissionRepository) DeleteForDealer(ctx context.Context, dealerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("dealer_id = ? AND id = ?", dealerID, id).
		Delete(&models.CommissionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.CommissionRepository = (*GormCommissionRepository)(nil)
