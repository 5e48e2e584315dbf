package handler

import (
	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// VehicleHandler serves vehicle reference data
type VehicleHandler struct {
	BaseHandler
	vehicles *ledgerapp.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicles *ledgerapp.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Register godoc
// @ID           registerVehicle
// @Summary      Register a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        request body ledger.CreateVehicleRequest true "Vehicle"
// @Success      201 {object} APIResponse[ledger.VehicleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles [post]
func (h *VehicleHandler) Register(c *gin.Context) {
	var req ledgerapp.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	vehicle, err := h.vehicles.Register(c.Request.Context(), dealerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vehicle)
}

// List godoc
// @ID           listVehicles
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledger.VehicleResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context(), dealerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vehicles)
}

// Get godoc
// @ID           getVehicle
// @Summary      Get a vehicle by ID
// @Tags         vehicles
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} APIResponse[ledger.VehicleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles/{id} [get]
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}

	vehicle, err := h.vehicles.GetByID(c.Request.Context(), dealerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vehicle)
}

// UpdatePrices godoc
// @ID           updateVehiclePrices
// @Summary      Edit purchase and sale price
// @Description  Commissions already granted keep their base
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        request body ledger.UpdateVehiclePricesRequest true "Prices"
// @Success      200 {object} APIResponse[ledger.VehicleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles/{id}/prices [put]
func (h *VehicleHandler) UpdatePrices(c *gin.Context) {
	id, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}
	var req ledgerapp.UpdateVehiclePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	vehicle, err := h.vehicles.UpdatePrices(c.Request.Context(), dealerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vehicle)
}

// EmployeeHandler serves employee reference data
type EmployeeHandler struct {
	BaseHandler
	employees *ledgerapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employees *ledgerapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Register godoc
// @ID           registerEmployee
// @Summary      Register an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        request body ledger.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[ledger.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /employees [post]
func (h *EmployeeHandler) Register(c *gin.Context) {
	var req ledgerapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	employee, err := h.employees.Register(c.Request.Context(), dealerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// Get godoc
// @ID           getEmployee
// @Summary      Get an employee by ID
// @Tags         employees
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} APIResponse[ledger.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "employee ID")
	if !ok {
		return
	}

	employee, err := h.employees.GetByID(c.Request.Context(), dealerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}
