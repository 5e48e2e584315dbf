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
	"gorm.io/gorm/clause"
)

// GormCommissionRoleRepository implements ledger.CommissionRoleRepository using GORM
type GormCommissionRoleRepository struct {
	db *gorm.DB
}

// NewGormCommissionRoleRepository creates a new GormCommissionRoleRepository
func NewGormCommissionRoleRepository(db *gorm.DB) *GormCommissionRoleRepository {
	return &GormCommissionRoleRepository{db: db}
}

// FindByIDForDealer finds a commission role of the dealer
func (r *GormCommissionRoleRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.CommissionRole, error) {
	var model models.CommissionRoleModel
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

// FindAllForDealer lists the dealer's roles by name
func (r *GormCommissionRoleRepository) FindAllForDealer(ctx context.Context, dealerID uuid.UUID) ([]ledger.CommissionRole, error) {
	var rows []models.CommissionRoleModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ?", dealerID).
		Order("role_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]ledger.CommissionRole, len(rows))
	for i := range rows {
		roles[i] = *rows[i].ToDomain()
	}
	return roles, nil
}

// ExistsByName reports whether the dealer already has a role with this name, ignoring case
func (r *GormCommissionRoleRepository) ExistsByName(ctx context.Context, dealerID uuid.UUID, roleName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CommissionRoleModel{}).
		Where("dealer_id = ? AND LOWER(role_name) = ?", dealerID, strings.ToLower(strings.TrimSpace(roleName))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts or updates a commission role
func (r *GormCommissionRoleRepository) Save(ctx context.Context, role *ledger.CommissionRole) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(models.CommissionRoleModelFromDomain(role)).Error
}

var _ ledger.CommissionRoleRepository = (*GormCommissionRoleRepository)(nil)
