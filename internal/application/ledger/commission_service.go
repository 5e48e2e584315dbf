package ledger

import (
	"context"
	"errors"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommissionService grants and removes commission snapshots
type CommissionService struct {
	vehicleRepo    ledger.VehicleRepository
	employeeRepo   ledger.EmployeeRepository
	roleRepo       ledger.CommissionRoleRepository
	commissionRepo ledger.CommissionRepository
	metrics        *telemetry.LedgerMetrics
	logger         *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(
	vehicleRepo ledger.VehicleRepository,
	employeeRepo ledger.EmployeeRepository,
	roleRepo ledger.CommissionRoleRepository,
	commissionRepo ledger.CommissionRepository,
	logger *zap.Logger,
) *CommissionService {
	return &CommissionService{
		vehicleRepo:    vehicleRepo,
		employeeRepo:   employeeRepo,
		roleRepo:       roleRepo,
		commissionRepo: commissionRepo,
		logger:         logger,
	}
}

// SetLedgerMetrics sets the metrics recorder
func (s *CommissionService) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// GrantCommission computes a commission from the vehicle's current prices
// and the resolved rate, then stores it as an immutable snapshot.
func (s *CommissionService) GrantCommission(ctx context.Context, dealerID uuid.UUID, req GrantCommissionRequest) (*CommissionResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForDealer(ctx, dealerID, req.VehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("Vehicle not found")
		}
		return nil, shared.NewPersistenceFailure("load vehicle", err)
	}

	grant := ledger.CommissionGrant{
		EmployeeID:      req.EmployeeID,
		RoleID:          req.RoleID,
		OverridePercent: req.OverridePercent,
	}
	if req.EmployeeID != uuid.Nil {
		if grant.Employee, err = s.employeeRepo.FindByIDForDealer(ctx, dealerID, req.EmployeeID); err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewPersistenceFailure("load employee", err)
			}
			grant.Employee = nil
		}
	}
	if req.RoleID != uuid.Nil {
		if grant.Role, err = s.roleRepo.FindByIDForDealer(ctx, dealerID, req.RoleID); err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewPersistenceFailure("load commission role", err)
			}
			grant.Role = nil
		}
	}

	commission, err := ledger.GrantCommission(vehicle, grant)
	if err != nil {
		return nil, err
	}
	if err := s.commissionRepo.Save(ctx, commission); err != nil {
		return nil, shared.NewPersistenceFailure("save commission", err)
	}

	s.metrics.RecordCommission(ctx, commission.Amount, commission.IsSpecialist)
	log := logger.Enrich(ctx, s.logger)
	fields := []zap.Field{
		zap.String("commission_id", commission.ID.String()),
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("employee", commission.EmployeeName),
		zap.String("role", commission.RoleName),
		zap.String("rate", commission.RateUsed.String()),
		zap.String("amount", commission.Amount.String()),
	}
	if grant.Employee == nil || grant.Role == nil {
		log.Warn("commission granted against a dangling reference", fields...)
	} else {
		log.Info("commission granted", fields...)
	}

	resp := ToCommissionResponse(commission)
	return &resp, nil
}

// GetCommission retrieves a commission
func (s *CommissionService) GetCommission(ctx context.Context, dealerID, id uuid.UUID) (*CommissionResponse, error) {
	commission, err := s.commissionRepo.FindByIDForDealer(ctx, dealerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCommissionResponse(commission)
	return &resp, nil
}

// ListCommissions returns the vehicle's commissions in grant order
func (s *CommissionService) ListCommissions(ctx context.Context, dealerID, vehicleID uuid.UUID) ([]CommissionResponse, error) {
	commissions, err := s.commissionRepo.FindByVehicle(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, shared.NewPersistenceFailure("load commissions", err)
	}
	out := make([]CommissionResponse, len(commissions))
	for i := range commissions {
		out[i] = ToCommissionResponse(&commissions[i])
	}
	return out, nil
}

// DeleteCommission removes a commission. Nothing else changes.
func (s *CommissionService) DeleteCommission(ctx context.Context, dealerID, id uuid.UUID) error {
	if err := s.commissionRepo.DeleteForDealer(ctx, dealerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return shared.NewPersistenceFailure("delete commission", err)
	}
	logger.Enrich(ctx, s.logger).Info("commission deleted", zap.String("commission_id", id.String()))
	return nil
}

// CommissionRoleService manages commission role definitions
type CommissionRoleService struct {
	roleRepo ledger.CommissionRoleRepository
}

// NewCommissionRoleService creates a new CommissionRoleService
func NewCommissionRoleService(roleRepo ledger.CommissionRoleRepository) *CommissionRoleService {
	return &CommissionRoleService{roleRepo: roleRepo}
}

// CreateRole defines a role. Names are unique per dealer, ignoring case.
func (s *CommissionRoleService) CreateRole(ctx context.Context, dealerID uuid.UUID, req CreateRoleRequest) (*RoleResponse, error) {
	role, err := ledger.NewCommissionRole(dealerID, req.RoleName, req.HelperRate, req.SpecialistRate)
	if err != nil {
		return nil, err
	}
	exists, err := s.roleRepo.ExistsByName(ctx, dealerID, role.RoleName)
	if err != nil {
		return nil, shared.NewPersistenceFailure("check role name", err)
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Commission role with this name already exists")
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, shared.NewPersistenceFailure("save commission role", err)
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// UpdateRoleRates replaces both payout tiers. Commissions already granted keep their rates.
func (s *CommissionRoleService) UpdateRoleRates(ctx context.Context, dealerID, roleID uuid.UUID, req UpdateRoleRatesRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForDealer(ctx, dealerID, roleID)
	if err != nil {
		return nil, err
	}
	if err := role.UpdateRates(req.HelperRate, req.SpecialistRate); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, shared.NewPersistenceFailure("save commission role", err)
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// GetRole retrieves a role
func (s *CommissionRoleService) GetRole(ctx context.Context, dealerID, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForDealer(ctx, dealerID, roleID)
	if err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// ListRoles returns the dealer's roles
func (s *CommissionRoleService) ListRoles(ctx context.Context, dealerID uuid.UUID) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAllForDealer(ctx, dealerID)
	if err != nil {
		return nil, shared.NewPersistenceFailure("load commission roles", err)
	}
	out := make([]RoleResponse, len(roles))
	for i := range roles {
		out[i] = ToRoleResponse(&roles[i])
	}
	return out, nil
}
