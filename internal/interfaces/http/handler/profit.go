package handler

import (
	"bytes"
	"fmt"
	"net/http"

	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ProfitHandler serves profit summaries and the ledger workbook
type ProfitHandler struct {
	BaseHandler
	profit *ledgerapp.ProfitService
	export *ledgerapp.ExportService
}

// NewProfitHandler creates a new ProfitHandler
func NewProfitHandler(profit *ledgerapp.ProfitService, export *ledgerapp.ExportService) *ProfitHandler {
	return &ProfitHandler{profit: profit, export: export}
}

// Summary godoc
// @ID           getVehicleProfit
// @Summary      Get the profit summary of a vehicle
// @Tags         profit
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} APIResponse[ledger.ProfitSummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles/{id}/profit [get]
func (h *ProfitHandler) Summary(c *gin.Context) {
	vehicleID, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}

	summary, err := h.profit.GetProfitSummary(c.Request.Context(), dealerID(c), vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Export godoc
// @ID           exportVehicleLedger
// @Summary      Download the vehicle ledger workbook
// @Tags         profit
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {file} binary
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /vehicles/{id}/ledger.xlsx [get]
func (h *ProfitHandler) Export(c *gin.Context) {
	vehicleID, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.export.ExportVehicleLedger(c.Request.Context(), dealerID(c), vehicleID, &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.export.FileName(vehicleID)))
	c.Data(http.StatusOK, h.export.ContentType(), buf.Bytes())
}
