package handler

import (
	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// CommissionHandler serves commission grants for a vehicle
type CommissionHandler struct {
	BaseHandler
	commissions *ledgerapp.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissions *ledgerapp.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissions: commissions}
}

// List godoc
// @ID           listVehicleCommissions
// @Summary      List commissions on a vehicle
// @Description  Commission snapshots granted on the vehicle
// @Tags         commissions
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledger.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles/{id}/commissions [get]
func (h *CommissionHandler) List(c *gin.Context) {
	vehicleID, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}

	commissions, err := h.commissions.ListCommissions(c.Request.Context(), dealerID(c), vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, commissions)
}

// Grant godoc
// @ID           grantCommission
// @Summary      Grant a commission
// @Description  Computes the commission on raw profit and freezes the rate, base and amount
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        request body ledger.GrantCommissionRequest true "Commission grant"
// @Success      201 {object} APIResponse[ledger.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles/{id}/commissions [post]
func (h *CommissionHandler) Grant(c *gin.Context) {
	vehicleID, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}
	var req ledgerapp.GrantCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.VehicleID = vehicleID

	commission, err := h.commissions.GrantCommission(c.Request.Context(), dealerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, commission)
}

// Get godoc
// @ID           getCommission
// @Summary      Get a commission by ID
// @Tags         commissions
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Commission ID" format(uuid)
// @Success      200 {object} APIResponse[ledger.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /commissions/{id} [get]
func (h *CommissionHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "commission ID")
	if !ok {
		return
	}

	commission, err := h.commissions.GetCommission(c.Request.Context(), dealerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, commission)
}

// Delete godoc
// @ID           deleteCommission
// @Summary      Delete a commission
// @Tags         commissions
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Commission ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /commissions/{id} [delete]
func (h *CommissionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "commission ID")
	if !ok {
		return
	}

	if err := h.commissions.DeleteCommission(c.Request.Context(), dealerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RoleHandler manages commission roles and their two rate tiers
type RoleHandler struct {
	BaseHandler
	roles *ledgerapp.CommissionRoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roles *ledgerapp.CommissionRoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List godoc
// @ID           listCommissionRoles
// @Summary      List commission roles
// @Tags         commission-roles
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledger.RoleResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /commission-roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.ListRoles(c.Request.Context(), dealerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// Get godoc
// @ID           getCommissionRole
// @Summary      Get a commission role by ID
// @Tags         commission-roles
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Role ID" format(uuid)
// @Success      200 {object} APIResponse[ledger.RoleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /commission-roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "role ID")
	if !ok {
		return
	}

	role, err := h.roles.GetRole(c.Request.Context(), dealerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Create godoc
// @ID           createCommissionRole
// @Summary      Create a commission role
// @Description  The specialist rate may not be below the helper rate
// @Tags         commission-roles
// @Accept       json
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        request body ledger.CreateRoleRequest true "Role"
// @Success      201 {object} APIResponse[ledger.RoleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /commission-roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	role, err := h.roles.CreateRole(c.Request.Context(), dealerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// UpdateRates godoc
// @ID           updateCommissionRoleRates
// @Summary      Update the rates of a commission role
// @Description  Existing commissions keep the rate they were granted at
// @Tags         commission-roles
// @Accept       json
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Role ID" format(uuid)
// @Param        request body ledger.UpdateRoleRatesRequest true "Rates"
// @Success      200 {object} APIResponse[ledger.RoleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /commission-roles/{id} [put]
func (h *RoleHandler) UpdateRates(c *gin.Context) {
	id, ok := h.pathID(c, "role ID")
	if !ok {
		return
	}
	var req ledgerapp.UpdateRoleRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	role, err := h.roles.UpdateRoleRates(c.Request.Context(), dealerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}
