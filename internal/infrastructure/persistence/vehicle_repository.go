package persistence

import (
	"context"
	"errors"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVehicleRepository implements ledger.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByIDForDealer finds a vehicle owned by the dealer
func (r *GormVehicleRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Vehicle, error) {
	var model models.VehicleModel
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

// FindAllForDealer lists the dealer's vehicles, newest first
func (r *GormVehicleRepository) FindAllForDealer(ctx context.Context, dealerID uuid.UUID) ([]ledger.Vehicle, error) {
	var rows []models.VehicleModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ?", dealerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	vehicles := make([]ledger.Vehicle, len(rows))
	for i := range rows {
		vehicles[i] = *rows[i].ToDomain()
	}
	return vehicles, nil
}

// Save inserts or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *ledger.Vehicle) error {
	model := models.VehicleModelFromDomain(vehicle)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

var _ ledger.VehicleRepository = (*GormVehicleRepository)(nil)
