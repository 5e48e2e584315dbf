package handler

import (
	"errors"
	"strings"
	"time"

	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

// ExpenseHandler serves the per-vehicle expense view
type ExpenseHandler struct {
	ReceiptHandler
	expenses *ledgerapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler. intake may be nil, in
// which case receipts attached to a multipart form are ignored.
func NewExpenseHandler(expenses *ledgerapp.ExpenseService, intake *ledgerapp.ReceiptIntakeService, maxReceiptBytes int64) *ExpenseHandler {
	return &ExpenseHandler{
		ReceiptHandler: ReceiptHandler{intake: intake, maxBytes: maxReceiptBytes},
		expenses:       expenses,
	}
}

// List godoc
// @ID           listVehicleExpenses
// @Summary      List expenses on a vehicle
// @Description  Manual expenses merged with booked bank transactions, newest first
// @Tags         expenses
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledger.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /vehicles/{id}/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	vehicleID, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}

	expenses, err := h.expenses.ListExpenses(c.Request.Context(), dealerID(c), vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// Get godoc
// @ID           getExpense
// @Summary      Get an expense by ID
// @Tags         expenses
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[ledger.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "expense ID")
	if !ok {
		return
	}

	expense, err := h.expenses.GetExpense(c.Request.Context(), dealerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Create godoc
// @ID           createExpense
// @Summary      Record a manual expense
// @Description  JSON body, or a multipart form whose receipt image fills the fields left empty
// @Tags         expenses
// @Accept       json,mpfd
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Vehicle ID" format(uuid)
// @Param        request body ledger.CreateExpenseRequest false "Expense (JSON)"
// @Param        receipt formData file false "Receipt image (multipart)"
// @Success      201 {object} APIResponse[ledger.CreateExpenseResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /vehicles/{id}/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	vehicleID, ok := h.pathID(c, "vehicle ID")
	if !ok {
		return
	}

	var (
		req      ledgerapp.CreateExpenseRequest
		degraded bool
	)
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		form, err := expenseForm(c)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		req = form

		image, ok := h.receipt(c)
		if !ok {
			return
		}
		if image != nil && h.intake != nil {
			degraded = h.intake.Prefill(c.Request.Context(), *image, &req)
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.VehicleID = vehicleID

	expense, err := h.expenses.CreateManualExpense(c.Request.Context(), dealerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ledgerapp.CreateExpenseResult{Expense: *expense, ReceiptDegraded: degraded})
}

// Delete godoc
// @ID           deleteExpense
// @Summary      Delete a manual expense
// @Description  Bank feed rows cannot be deleted
// @Tags         expenses
// @Produce      json
// @Param        X-Dealer-ID header string false "Dealer ID" format(uuid)
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "expense ID")
	if !ok {
		return
	}

	if err := h.expenses.DeleteExpense(c.Request.Context(), dealerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// expenseForm reads the text fields of a multipart expense form. Empty
// fields stay empty so a receipt can fill them.
func expenseForm(c *gin.Context) (ledgerapp.CreateExpenseRequest, error) {
	req := ledgerapp.CreateExpenseRequest{
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		ReceiptURL:  strings.TrimSpace(c.PostForm("receipt_url")),
	}
	if raw := strings.TrimSpace(c.PostForm("amount")); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return req, errors.New("amount must be a decimal number")
		}
		req.Amount = &amount
	}
	if raw := strings.TrimSpace(c.PostForm("date")); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return req, errors.New("date must be formatted YYYY-MM-DD")
		}
		req.Date = &date
	}
	return req, nil
}
