package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ledger.ExpenseRepository using GORM.
// Pending domain events are written to the outbox in the same transaction
// as the expense row.
type GormExpenseRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB, outboxSaver shared.OutboxEventSaver) *GormExpenseRepository {
	return &GormExpenseRepository{db: db, outboxSaver: outboxSaver}
}

// FindByIDForDealer finds a manual expense owned by the dealer
func (r *GormExpenseRepository) FindByIDForDealer(ctx context.Context, dealerID, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
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

// FindByVehicle returns the vehicle's manual expenses in insertion order
func (r *GormExpenseRepository) FindByVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]ledger.Expense, error) {
	var rows []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("dealer_id = ? AND vehicle_id = ?", dealerID, vehicleID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	expenses := make([]ledger.Expense, len(rows))
	for i := range rows {
		expenses[i] = *rows[i].ToDomain()
	}
	return expenses, nil
}

// SaveWithEvents writes the expense and its pending events atomically.
// Events are cleared from the aggregate once committed.
func (r *GormExpenseRepository) SaveWithEvents(ctx context.Context, expense *ledger.Expense) error {
	events := expense.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ExpenseModelFromDomain(expense)).Error; err != nil {
			return err
		}
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	expense.ClearDomainEvents()
	return nil
}

// DeleteForDealer removes a manual expense. Missing rows yield shared.ErrNotFound.
func (r *GormExpenseRepository) DeleteForDealer(ctx context.Context, dealerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("dealer_id = ? AND id = ?", dealerID, id).
		Delete(&models.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)
