package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is an entity that records domain events for the outbox
type AggregateRoot interface {
	Entity
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides event bookkeeping for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
	}
}

// DealerAggregateRoot scopes an aggregate to a single dealership
type DealerAggregateRoot struct {
	BaseAggregateRoot
	DealerID uuid.UUID
}

// NewDealerAggregateRoot creates a new dealer-scoped aggregate root
func NewDealerAggregateRoot(dealerID uuid.UUID) DealerAggregateRoot {
	return DealerAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		DealerID:          dealerID,
	}
}

// GetDealerID returns the owning dealership
func (d *DealerAggregateRoot) GetDealerID() uuid.UUID {
	return d.DealerID
}
