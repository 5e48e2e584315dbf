package ledger

import (
	"strings"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot labels for references that no longer resolve
const (
	UnknownEmployeeName = "Unknown employee"
	UnknownRoleName     = "Unknown role"
)

// Employee is a dealership staff member who can be paid commission
type Employee struct {
	shared.BaseEntity
	DealerID uuid.UUID
	Name     string
	Roles    []string
}

// NewEmployee registers an employee with their declared role names
func NewEmployee(dealerID uuid.UUID, name string, roles []string) (*Employee, error) {
	if dealerID == uuid.Nil {
		return nil, shared.NewValidationError("Dealer is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Employee name is required")
	}
	return &Employee{
		BaseEntity: shared.NewBaseEntity(),
		DealerID:   dealerID,
		Name:       name,
		Roles:      normalizeRoleNames(roles),
	}, nil
}

func normalizeRoleNames(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Commission is a payout granted to an employee on a vehicle sale. Every
// field is a snapshot taken at grant time; later edits to the employee,
// the role or the vehicle prices never change it.
type Commission struct {
	shared.BaseEntity
	DealerID     uuid.UUID
	VehicleID    uuid.UUID
	EmployeeID   *uuid.UUID
	EmployeeName string
	RoleID       *uuid.UUID
	RoleName     string
	IsSpecialist bool
	RateUsed     decimal.Decimal
	OverrideRate *decimal.Decimal
	Amount       decimal.Decimal
}

// CommissionGrant describes a grant request. Employee and Role are the
// loaded records and may be nil when the ids no longer resolve.
type CommissionGrant struct {
	EmployeeID      uuid.UUID
	Employee        *Employee
	RoleID          uuid.UUID
	Role            *CommissionRole
	OverridePercent *decimal.Decimal
}

// GrantCommission computes and snapshots a commission on vehicle.
// amount = (sale - purchase) * rate, rounded to the currency minor unit.
// Dangling employee or role references produce a zero-rate entry rather
// than an error so the attempt stays visible.
func GrantCommission(vehicle *Vehicle, grant CommissionGrant) (*Commission, error) {
	if vehicle == nil {
		return nil, shared.NewValidationError("Vehicle is required")
	}
	if grant.EmployeeID == uuid.Nil {
		return nil, shared.NewValidationError("Employee is required")
	}
	if grant.RoleID == uuid.Nil {
		return nil, shared.NewValidationError("Commission role is required")
	}
	if err := ValidateOverridePercent(grant.OverridePercent); err != nil {
		return nil, err
	}

	employeeName := UnknownEmployeeName
	var employeeRoles []string
	if grant.Employee != nil {
		employeeName = grant.Employee.Name
		employeeRoles = grant.Employee.Roles
	}
	roleName := UnknownRoleName
	if grant.Role != nil {
		roleName = grant.Role.RoleName
	}

	// A missing employee pays 0 unless overridden, same as a missing role.
	role := grant.Role
	if grant.Employee == nil {
		role = nil
	}
	resolution := ResolveRate(role, employeeRoles, grant.OverridePercent)
	// the amount is computed from the rate as stored
	rate := RoundRate(resolution.Rate)

	var overrideRate *decimal.Decimal
	if grant.OverridePercent != nil {
		r := RoundRate(grant.OverridePercent.Div(hundred))
		overrideRate = &r
	}

	employeeID := grant.EmployeeID
	roleID := grant.RoleID
	return &Commission{
		BaseEntity:   shared.NewBaseEntity(),
		DealerID:     vehicle.DealerID,
		VehicleID:    vehicle.ID,
		EmployeeID:   &employeeID,
		EmployeeName: employeeName,
		RoleID:       &roleID,
		RoleName:     roleName,
		IsSpecialist: resolution.IsSpecialist,
		RateUsed:     rate,
		OverrideRate: overrideRate,
		Amount:       RoundMoney(vehicle.RawProfit().Mul(rate)),
	}, nil
}
