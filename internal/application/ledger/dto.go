package ledger

import (
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Vehicles and employees
// =============================================================================

// CreateVehicleRequest registers a vehicle
type CreateVehicleRequest struct {
	Year          int             `json:"year" binding:"min=0,max=9999"`
	Make          string          `json:"make" binding:"max=100"`
	Model         string          `json:"model" binding:"max=100"`
	VIN           string          `json:"vin" binding:"max=17"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"decimal_gte0"`
	SalePrice     decimal.Decimal `json:"sale_price" binding:"decimal_gte0"`
}

// UpdateVehiclePricesRequest edits prices; omitted fields stay unchanged
type UpdateVehiclePricesRequest struct {
	PurchasePrice *decimal.Decimal `json:"purchase_price" binding:"omitempty,decimal_gte0"`
	SalePrice     *decimal.Decimal `json:"sale_price" binding:"omitempty,decimal_gte0"`
}

// VehicleResponse is the API view of a vehicle
type VehicleResponse struct {
	ID            uuid.UUID       `json:"id"`
	Year          int             `json:"year"`
	Make          string          `json:"make"`
	Model         string          `json:"model"`
	VIN           string          `json:"vin,omitempty"`
	DisplayName   string          `json:"display_name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToVehicleResponse converts a domain vehicle
func ToVehicleResponse(v *ledger.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:            v.ID,
		Year:          v.Year,
		Make:          v.Make,
		Model:         v.Model,
		VIN:           v.VIN,
		DisplayName:   v.DisplayName(),
		PurchasePrice: v.PurchasePrice,
		SalePrice:     v.SalePrice,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// CreateEmployeeRequest registers an employee
type CreateEmployeeRequest struct {
	Name  string   `json:"name" binding:"required,max=200"`
	Roles []string `json:"roles" binding:"omitempty,dive,max=100"`
}

// EmployeeResponse is the API view of an employee
type EmployeeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *ledger.Employee) EmployeeResponse {
	roles := e.Roles
	if roles == nil {
		roles = []string{}
	}
	return EmployeeResponse{ID: e.ID, Name: e.Name, Roles: roles, CreatedAt: e.CreatedAt}
}

// =============================================================================
// Expenses
// =============================================================================

// CreateExpenseRequest is the manual expense form. Amount is a pointer so a
// missing value can be told apart from zero.
type CreateExpenseRequest struct {
	VehicleID   uuid.UUID        `json:"-"`
	Description string           `json:"description" form:"description"`
	Amount      *decimal.Decimal `json:"amount" form:"amount"`
	Category    string           `json:"category" form:"category"`
	Date        *time.Time       `json:"date" form:"date" time_format:"2006-01-02"`
	ReceiptURL  string           `json:"receipt_url" form:"receipt_url" binding:"omitempty,max=2048"`
}

// ExpenseResponse is one row of the merged expense view
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Source      string          `json:"source"`
	Deletable   bool            `json:"deletable"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
}

// ToExpenseResponse converts a domain expense
func ToExpenseResponse(e *ledger.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		VehicleID:   e.VehicleID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category.String(),
		Date:        e.Date,
		Source:      string(e.Source),
		Deletable:   e.IsDeletable(),
		ReceiptURL:  e.ReceiptURL,
	}
}

// ToExpenseResponses converts a slice of domain expenses
func ToExpenseResponses(expenses []ledger.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}

// CreateExpenseResult is the created expense plus the receipt prefill outcome
type CreateExpenseResult struct {
	Expense         ExpenseResponse `json:"expense"`
	ReceiptDegraded bool            `json:"receipt_degraded,omitempty"`
}

// =============================================================================
// Commissions
// =============================================================================

// GrantCommissionRequest grants a commission on a vehicle
type GrantCommissionRequest struct {
	VehicleID       uuid.UUID        `json:"-"`
	EmployeeID      uuid.UUID        `json:"employee_id"`
	RoleID          uuid.UUID        `json:"role_id"`
	OverridePercent *decimal.Decimal `json:"override_percent" binding:"omitempty,decimal_gte0"`
}

// CommissionResponse is the API view of a commission snapshot
type CommissionResponse struct {
	ID           uuid.UUID        `json:"id"`
	VehicleID    uuid.UUID        `json:"vehicle_id"`
	EmployeeID   *uuid.UUID       `json:"employee_id,omitempty"`
	EmployeeName string           `json:"employee_name"`
	RoleID       *uuid.UUID       `json:"role_id,omitempty"`
	RoleName     string           `json:"role_name"`
	IsSpecialist bool             `json:"is_specialist"`
	RateUsed     decimal.Decimal  `json:"rate_used"`
	OverrideRate *decimal.Decimal `json:"override_rate,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ToCommissionResponse converts a domain commission
func ToCommissionResponse(c *ledger.Commission) CommissionResponse {
	return CommissionResponse{
		ID:           c.ID,
		VehicleID:    c.VehicleID,
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		RoleID:       c.RoleID,
		RoleName:     c.RoleName,
		IsSpecialist: c.IsSpecialist,
		RateUsed:     c.RateUsed,
		OverrideRate: c.OverrideRate,
		Amount:       c.Amount,
		CreatedAt:    c.CreatedAt,
	}
}

// CreateRoleRequest defines a commission role. Rates are fractions.
type CreateRoleRequest struct {
	RoleName       string          `json:"role_name" binding:"required,max=100"`
	HelperRate     decimal.Decimal `json:"helper_rate" binding:"decimal_gte0"`
	SpecialistRate decimal.Decimal `json:"specialist_rate" binding:"decimal_gte0"`
}

// UpdateRoleRatesRequest replaces both tiers of a role
type UpdateRoleRatesRequest struct {
	HelperRate     decimal.Decimal `json:"helper_rate" binding:"decimal_gte0"`
	SpecialistRate decimal.Decimal `json:"specialist_rate" binding:"decimal_gte0"`
}

// RoleResponse is the API view of a commission role
type RoleResponse struct {
	ID             uuid.UUID       `json:"id"`
	RoleName       string          `json:"role_name"`
	HelperRate     decimal.Decimal `json:"helper_rate"`
	SpecialistRate decimal.Decimal `json:"specialist_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToRoleResponse converts a domain role
func ToRoleResponse(r *ledger.CommissionRole) RoleResponse {
	return RoleResponse{
		ID:             r.ID,
		RoleName:       r.RoleName,
		HelperRate:     r.HelperRate,
		SpecialistRate: r.SpecialistRate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// =============================================================================
// Profit and receipts
// =============================================================================

// ProfitSummaryResponse is the API view of a vehicle's profitability
type ProfitSummaryResponse struct {
	VehicleID        uuid.UUID       `json:"vehicle_id"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	ExpenseCount     int             `json:"expense_count"`
	CommissionCount  int             `json:"commission_count"`
}

// ToProfitSummaryResponse converts a domain summary
func ToProfitSummaryResponse(s ledger.ProfitSummary) ProfitSummaryResponse {
	return ProfitSummaryResponse{
		VehicleID:        s.VehicleID,
		PurchasePrice:    s.PurchasePrice,
		SalePrice:        s.SalePrice,
		TotalExpenses:    s.TotalExpenses,
		TotalCost:        s.TotalCost,
		GrossProfit:      s.GrossProfit,
		TotalCommissions: s.TotalCommissions,
		NetProfit:        s.NetProfit,
		ExpenseCount:     s.ExpenseCount,
		CommissionCount:  s.CommissionCount,
	}
}

// ReceiptSuggestionResponse carries whatever could be read off a receipt
type ReceiptSuggestionResponse struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Degraded    bool             `json:"degraded"`
}

// ToReceiptSuggestionResponse converts a domain suggestion
func ToReceiptSuggestionResponse(s *ledger.ReceiptSuggestion) ReceiptSuggestionResponse {
	resp := ReceiptSuggestionResponse{
		Description: s.Description,
		Amount:      s.Amount,
		Degraded:    s.Degraded,
	}
	if s.Category != nil {
		c := s.Category.String()
		resp.Category = &c
	}
	return resp
}
