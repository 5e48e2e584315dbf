package models

import (
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleModel is the persistence model for vehicles
type VehicleModel struct {
	DealerModel
	Year          int             `gorm:"not null"`
	Make          string          `gorm:"type:varchar(100);not null"`
	Model         string          `gorm:"type:varchar(100);not null"`
	VIN           string          `gorm:"type:varchar(32);index"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle
func (m *VehicleModel) ToDomain() *ledger.Vehicle {
	return &ledger.Vehicle{
		BaseEntity:    m.BaseModel.ToDomain(),
		DealerID:      m.DealerID,
		Year:          m.Year,
		Make:          m.Make,
		Model:         m.Model,
		VIN:           m.VIN,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
	}
}

// VehicleModelFromDomain creates a persistence model from a domain Vehicle
func VehicleModelFromDomain(v *ledger.Vehicle) *VehicleModel {
	m := &VehicleModel{
		Year:          v.Year,
		Make:          v.Make,
		Model:         v.Model,
		VIN:           v.VIN,
		PurchasePrice: v.PurchasePrice,
		SalePrice:     v.SalePrice,
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	m.DealerID = v.DealerID
	return m
}

// EmployeeModel is the persistence model for employees
type EmployeeModel struct {
	DealerModel
	Name  string   `gorm:"type:varchar(200);not null"`
	Roles []string `gorm:"type:text;serializer:json"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *ledger.Employee {
	roles := m.Roles
	if roles == nil {
		roles = []string{}
	}
	return &ledger.Employee{
		BaseEntity: m.BaseModel.ToDomain(),
		DealerID:   m.DealerID,
		Name:       m.Name,
		Roles:      roles,
	}
}

// EmployeeModelFromDomain creates a persistence model from a domain Employee
func EmployeeModelFromDomain(e *ledger.Employee) *EmployeeModel {
	m := &EmployeeModel{Name: e.Name, Roles: e.Roles}
	m.FromDomainBaseEntity(e.BaseEntity)
	m.DealerID = e.DealerID
	return m
}

// ExpenseModel is the persistence model for manual expenses
type ExpenseModel struct {
	DealerModel
	VehicleID   uuid.UUID              `gorm:"type:uuid;not null;index:idx_expense_vehicle,priority:1"`
	Description string                 `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Category    ledger.ExpenseCategory `gorm:"type:varchar(50);not null"`
	Date        time.Time              `gorm:"not null;index:idx_expense_vehicle,priority:2"`
	ReceiptURL  string                 `gorm:"type:varchar(1000)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	return &ledger.Expense{
		DealerAggregateRoot: m.ToDealerAggregateRoot(),
		VehicleID:           m.VehicleID,
		Description:         m.Description,
		Amount:              m.Amount,
		Category:            m.Category,
		Date:                m.Date,
		Source:              ledger.ExpenseSourceManual,
		ReceiptURL:          m.ReceiptURL,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{
		VehicleID:   e.VehicleID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		ReceiptURL:  e.ReceiptURL,
	}
	m.FromDomainDealerAggregateRoot(e.DealerAggregateRoot)
	return m
}

// BankTransactionModel is the persistence model for the bank feed
type BankTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID       *uuid.UUID      `gorm:"type:uuid;index"`
	MerchantName    string          `gorm:"type:varchar(255);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TransactionDate time.Time       `gorm:"not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BankTransactionModel) TableName() string {
	return "bank_transactions"
}

// ToDomain converts the persistence model to a domain BankTransaction
func (m *BankTransactionModel) ToDomain() *ledger.BankTransaction {
	return &ledger.BankTransaction{
		ID:              m.ID,
		DealerID:        m.DealerID,
		VehicleID:       m.VehicleID,
		MerchantName:    m.MerchantName,
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
	}
}

// BankTransactionModelFromDomain creates a persistence model from a domain BankTransaction
func BankTransactionModelFromDomain(t *ledger.BankTransaction) *BankTransactionModel {
	return &BankTransactionModel{
		ID:              t.ID,
		DealerID:        t.DealerID,
		VehicleID:       t.VehicleID,
		MerchantName:    t.MerchantName,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}

// CommissionRoleModel is the persistence model for commission roles
type CommissionRoleModel struct {
	DealerModel
	RoleName       string          `gorm:"type:varchar(100);not null"`
	HelperRate     decimal.Decimal `gorm:"type:decimal(9,6);not null"`
	SpecialistRate decimal.Decimal `gorm:"type:decimal(9,6);not null"`
}

// TableName returns the table name for GORM
func (CommissionRoleModel) TableName() string {
	return "commission_roles"
}

// ToDomain converts the persistence model to a domain CommissionRole
func (m *CommissionRoleModel) ToDomain() *ledger.CommissionRole {
	return &ledger.CommissionRole{
		BaseEntity:     m.BaseModel.ToDomain(),
		DealerID:       m.DealerID,
		RoleName:       m.RoleName,
		HelperRate:     m.HelperRate,
		SpecialistRate: m.SpecialistRate,
	}
}

// CommissionRoleModelFromDomain creates a persistence model from a domain CommissionRole
func CommissionRoleModelFromDomain(r *ledger.CommissionRole) *CommissionRoleModel {
	m := &CommissionRoleModel{
		RoleName:       r.RoleName,
		HelperRate:     r.HelperRate,
		SpecialistRate: r.SpecialistRate,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	m.DealerID = r.DealerID
	return m
}

// CommissionModel is the persistence model for granted commissions.
// Employee and role ids are kept for audit without foreign keys since the
// referenced rows may be deleted later.
type CommissionModel struct {
	DealerModel
	VehicleID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	EmployeeID   *uuid.UUID       `gorm:"type:uuid;index"`
	EmployeeName string           `gorm:"type:varchar(200);not null"`
	RoleID       *uuid.UUID       `gorm:"type:uuid"`
	RoleName     string           `gorm:"type:varchar(100);not null"`
	IsSpecialist bool             `gorm:"not null"`
	RateUsed     decimal.Decimal  `gorm:"type:decimal(9,6);not null"`
	OverrideRate *decimal.Decimal `gorm:"type:decimal(9,6)"`
	Amount       decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CommissionModel) TableName() string {
	return "commissions"
}

// ToDomain converts the persistence model to a domain Commission
func (m *CommissionModel) ToDomain() *ledger.Commission {
	return &ledger.Commission{
		BaseEntity:   m.BaseModel.ToDomain(),
		DealerID:     m.DealerID,
		VehicleID:    m.VehicleID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		RoleID:       m.RoleID,
		RoleName:     m.RoleName,
		IsSpecialist: m.IsSpecialist,
		RateUsed:     m.RateUsed,
		OverrideRate: m.OverrideRate,
		Amount:       m.Amount,
	}
}

// CommissionModelFromDomain creates a persistence model from a domain Commission
func CommissionModelFromDomain(c *ledger.Commission) *CommissionModel {
	m := &CommissionModel{
		VehicleID:    c.VehicleID,
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		RoleID:       c.RoleID,
		RoleName:     c.RoleName,
		IsSpecialist: c.IsSpecialist,
		RateUsed:     c.RateUsed,
		OverrideRate: c.OverrideRate,
		Amount:       c.Amount,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	m.DealerID = c.DealerID
	return m
}

// AccountCategoryModel is a row of the company category registry
type AccountCategoryModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DealerID  *uuid.UUID `gorm:"type:uuid;index"`
	Name      string     `gorm:"type:varchar(100);not null;index"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountCategoryModel) TableName() string {
	return "account_categories"
}

// ToDomain converts the persistence model to a domain AccountCategory
func (m *AccountCategoryModel) ToDomain() *ledger.AccountCategory {
	return &ledger.AccountCategory{
		ID:       m.ID,
		DealerID: m.DealerID,
		Name:     m.Name,
	}
}

// LedgerPostingModel is the persistence model for company ledger postings
type LedgerPostingModel struct {
	DealerModel
	SourceExpenseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:varchar(1000);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpenseDate     time.Time       `gorm:"not null"`
	Vendor          string          `gorm:"type:varchar(255);not null"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryName    string          `gorm:"type:varchar(100);not null"`
	Status          string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (LedgerPostingModel) TableName() string {
	return "ledger_postings"
}

// ToDomain converts the persistence model to a domain LedgerPosting
func (m *LedgerPostingModel) ToDomain() *ledger.LedgerPosting {
	return &ledger.LedgerPosting{
		BaseEntity:      m.BaseModel.ToDomain(),
		DealerID:        m.DealerID,
		SourceExpenseID: m.SourceExpenseID,
		VehicleID:       m.VehicleID,
		Description:     m.Description,
		Amount:          m.Amount,
		ExpenseDate:     m.ExpenseDate,
		Vendor:          m.Vendor,
		CategoryID:      m.CategoryID,
		CategoryName:    m.CategoryName,
		Status:          m.Status,
	}
}

// LedgerPostingModelFromDomain creates a persistence model from a domain LedgerPosting
func LedgerPostingModelFromDomain(p *ledger.LedgerPosting) *LedgerPostingModel {
	m := &LedgerPostingModel{
		SourceExpenseID: p.SourceExpenseID,
		VehicleID:       p.VehicleID,
		Description:     p.Description,
		Amount:          p.Amount,
		ExpenseDate:     p.ExpenseDate,
		Vendor:          p.Vendor,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		Status:          p.Status,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	m.DealerID = p.DealerID
	return m
}

// AllModels lists every model for schema migration in tests and tooling
func AllModels() []any {
	return []any{
		&VehicleModel{},
		&EmployeeModel{},
		&ExpenseModel{},
		&BankTransactionModel{},
		&CommissionRoleModel{},
		&CommissionModel{},
		&AccountCategoryModel{},
		&LedgerPostingModel{},
		&OutboxEntryModel{},
	}
}
