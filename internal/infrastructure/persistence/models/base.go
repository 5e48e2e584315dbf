package models

import (
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// DealerModel adds the owning dealership to BaseModel
type DealerModel struct {
	BaseModel
	DealerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainDealerAggregateRoot populates DealerModel from a dealer-scoped aggregate
func (m *DealerModel) FromDomainDealerAggregateRoot(a shared.DealerAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.DealerID = a.DealerID
}

// ToDealerAggregateRoot rebuilds the aggregate base without pending events
func (m *DealerModel) ToDealerAggregateRoot() shared.DealerAggregateRoot {
	return shared.DealerAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		DealerID:          m.DealerID,
	}
}
