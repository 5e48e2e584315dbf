package persistence

import (
	"context"
	"strings"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountCategoryRepository reads the company category registry
type GormAccountCategoryRepository struct {
	db *gorm.DB
}

// NewGormAccountCategoryRepository creates a new GormAccountCategoryRepository
func NewGormAccountCategoryRepository(db *gorm.DB) *GormAccountCategoryRepository {
	return &GormAccountCategoryRepository{db: db}
}

// Resolve prefers the dealer's own row for name, then the shared default row
// (dealer_id IS NULL). It returns nil without error when neither exists.
func (r *GormAccountCategoryRepository) Resolve(ctx context.Context, dealerID uuid.UUID, name string) (*ledger.AccountCategory, error) {
	var rows []models.AccountCategoryModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND (dealer_id = ? OR dealer_id IS NULL)", strings.ToLower(name), dealerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	var fallback *models.AccountCategoryModel
	for i := range rows {
		if rows[i].DealerID != nil && *rows[i].DealerID == dealerID {
			return rows[i].ToDomain(), nil
		}
		if fallback == nil {
			fallback = &rows[i]
		}
	}
	if fallback == nil {
		return nil, nil
	}
	return fallback.ToDomain(), nil
}

// Create adds a registry row. A nil dealer makes it a shared default.
func (r *GormAccountCategoryRepository) Create(ctx context.Context, category *ledger.AccountCategory) error {
	model := &models.AccountCategoryModel{
		ID:       category.ID,
		DealerID: category.DealerID,
		Name:     category.Name,
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
		category.ID = model.ID
	}
	return r.db.WithContext(ctx).Create(model).Error
}

var _ ledger.AccountCategoryRepository = (*GormAccountCategoryRepository)(nil)
