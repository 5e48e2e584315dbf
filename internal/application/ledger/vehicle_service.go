package ledger

import (
	"context"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleService manages vehicle reference data
type VehicleService struct {
	vehicleRepo ledger.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo ledger.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// Register creates a vehicle
func (s *VehicleService) Register(ctx context.Context, dealerID uuid.UUID, req CreateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := ledger.NewVehicle(dealerID, req.Year, req.Make, req.Model, req.VIN, req.PurchasePrice, req.SalePrice)
	if err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, shared.NewPersistenceFailure("save vehicle", err)
	}
	resp := ToVehicleResponse(vehicle)
	return &resp, nil
}

// GetByID retrieves a vehicle
func (s *VehicleService) GetByID(ctx context.Context, dealerID, vehicleID uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForDealer(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, err
	}
	resp := ToVehicleResponse(vehicle)
	return &resp, nil
}

// List returns the dealer's vehicles, newest first
func (s *VehicleService) List(ctx context.Context, dealerID uuid.UUID) ([]VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.FindAllForDealer(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	out := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		out[i] = ToVehicleResponse(&vehicles[i])
	}
	return out, nil
}

// UpdatePrices edits purchase and sale price. Existing commissions keep
// the amounts they were granted with.
func (s *VehicleService) UpdatePrices(ctx context.Context, dealerID, vehicleID uuid.UUID, req UpdateVehiclePricesRequest) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForDealer(ctx, dealerID, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := vehicle.UpdatePrices(req.PurchasePrice, req.SalePrice); err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, shared.NewPersistenceFailure("save vehicle", err)
	}
	resp := ToVehicleResponse(vehicle)
	return &resp, nil
}

// EmployeeService manages employee reference data
type EmployeeService struct {
	employeeRepo ledger.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo ledger.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Register creates an employee
func (s *EmployeeService) Register(ctx context.Context, dealerID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := ledger.NewEmployee(dealerID, req.Name, req.Roles)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, shared.NewPersistenceFailure("save employee", err)
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetByID retrieves an employee
func (s *EmployeeService) GetByID(ctx context.Context, dealerID, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByIDForDealer(ctx, dealerID, employeeID)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}
