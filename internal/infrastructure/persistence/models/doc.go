// Package models holds the GORM persistence models behind the ledger
// repositories. Domain types carry no ORM tags; each model converts to and
// from its domain type with ToDomain and a ...FromDomain constructor.
//
//   - base.go: shared id/timestamp and dealer columns
//   - ledger.go: vehicles, employees, expenses, bank transactions,
//     commission roles, commissions, account categories, ledger postings
//   - outbox.go: the outbox table for mirror delivery
package models
