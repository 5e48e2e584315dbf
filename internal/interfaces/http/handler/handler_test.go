package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	eventapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/event"
	ledgerapp "github.com/bryce-dotcom/og-dealer-app-sub001/internal/application/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/cache"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/event"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/export"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/persistence/models"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/handler"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/middleware"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// stubExtractor returns a canned suggestion or error
type stubExtractor struct {
	suggestion *ledger.ReceiptSuggestion
	err        error
	calls      int
}

func (s *stubExtractor) Extract(_ context.Context, _ ledger.ReceiptImage) (*ledger.ReceiptSuggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

// ledgerAPI is the full HTTP stack over an in-memory SQLite store
type ledgerAPI struct {
	engine   *gin.Engine
	db       *gorm.DB
	dealerID uuid.UUID
	bank     *persistence.GormBankTransactionRepository
}

func newLedgerAPI(t *testing.T, extractor ledger.ReceiptExtractor) *ledgerAPI {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()

	database, err := persistence.NewSQLiteDatabase(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	db := database.DB

	categories := persistence.NewGormAccountCategoryRepository(db)
	for _, name := range []string{ledger.AccountCategoryReconditioning, ledger.AccountCategoryFuel, ledger.AccountCategoryOther} {
		require.NoError(t, categories.Create(ctx, &ledger.AccountCategory{Name: name}))
	}

	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	outboxRepo := event.NewGormOutboxRepository(db)

	vehicleRepo := persistence.NewGormVehicleRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	roleRepo := persistence.NewGormCommissionRoleRepository(db)
	commissionRepo := persistence.NewGormCommissionRepository(db)
	bankRepo := persistence.NewGormBankTransactionRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db, event.NewOutboxPublisher(serializer, 3))

	poster := ledgerapp.NewLedgerPoster(categories, persistence.NewGormLedgerPostingRepository(db), log)
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewIdempotentHandler(
		ledgerapp.NewMirrorPostingHandler(vehicleRepo, poster, log),
		cache.NewInMemoryIdempotencyStore(),
		log,
	))
	require.NoError(t, bus.Start(ctx))
	processor := event.NewOutboxProcessor(outboxRepo, bus, serializer, event.DefaultOutboxProcessorConfig(), log)

	expenses := ledgerapp.NewExpenseService(vehicleRepo, expenseRepo, bankRepo, processor, log)
	profit := ledgerapp.NewProfitService(vehicleRepo, expenses, commissionRepo)
	var intake *ledgerapp.ReceiptIntakeService
	if extractor != nil {
		intake = ledgerapp.NewReceiptIntakeService(extractor, time.Second, log)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Dealer(uuid.New()))
	engine.GET("/health", handler.NewHealthHandler("dealer-ledger", nil).Health)

	r := router.NewRouter(engine)
	router.RegisterLedger(r, router.LedgerHandlers{
		Vehicles:    handler.NewVehicleHandler(ledgerapp.NewVehicleService(vehicleRepo)),
		Employees:   handler.NewEmployeeHandler(ledgerapp.NewEmployeeService(employeeRepo)),
		Expenses:    handler.NewExpenseHandler(expenses, intake, 1<<20),
		Commissions: handler.NewCommissionHandler(ledgerapp.NewCommissionService(vehicleRepo, employeeRepo, roleRepo, commissionRepo, log)),
		Roles:       handler.NewRoleHandler(ledgerapp.NewCommissionRoleService(roleRepo)),
		Profit:      handler.NewProfitHandler(profit, ledgerapp.NewExportService(profit, export.NewLedgerWorkbook(), "USD")),
		Receipts:    handler.NewReceiptHandler(intake, 1<<20),
		Outbox:      handler.NewOutboxHandler(eventapp.NewOutboxService(outboxRepo, log)),
	})
	r.Setup()

	return &ledgerAPI{engine: engine, db: db, dealerID: uuid.New(), bank: bankRepo}
}

type envelope = handler.APIResponse[json.RawMessage]

func (a *ledgerAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.serve(t, req)
}

func (a *ledgerAPI) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req.Header.Set(middleware.DealerIDHeader, a.dealerID.String())
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (a *ledgerAPI) createVehicle(t *testing.T, purchase, sale string) ledgerapp.VehicleResponse {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/vehicles", map[string]any{
		"year": 2019, "make": "Toyota", "model": "Camry",
		"purchase_price": purchase, "sale_price": sale,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ledgerapp.VehicleResponse](t, env)
}

func TestVehicleEndpoints(t *testing.T) {
	api := newLedgerAPI(t, nil)
	v := api.createVehicle(t, "10000", "13000")
	assert.Equal(t, "2019 Toyota Camry", v.DisplayName)

	t.Run("get", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/vehicles/"+v.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[ledgerapp.VehicleResponse](t, env)
		assert.True(t, got.SalePrice.Equal(decimal.NewFromInt(13000)))
	})

	t.Run("other dealer sees not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/"+v.ID.String(), nil)
		other := *api
		other.dealerID = uuid.New()
		w, env := other.serve(t, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/vehicles/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)

		var body handler.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.NotEmpty(t, body.Error.Message)
	})

	t.Run("negative price fails binding", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/vehicles", map[string]any{"year": 2020, "purchase_price": "-1", "sale_price": "0"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
	})

	t.Run("update prices", func(t *testing.T) {
		w, env := api.do(t, http.MethodPut, "/vehicles/"+v.ID.String()+"/prices", map[string]any{"sale_price": "14000"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[ledgerapp.VehicleResponse](t, env)
		assert.True(t, got.SalePrice.Equal(decimal.NewFromInt(14000)))
		assert.True(t, got.PurchasePrice.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("malformed dealer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
		req.Header.Set(middleware.DealerIDHeader, "lot-7")
		w := httptest.NewRecorder()
		api.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExpenseEndpoints(t *testing.T) {
	api := newLedgerAPI(t, nil)
	v := api.createVehicle(t, "10000", "13000")
	path := "/vehicles/" + v.ID.String() + "/expenses"

	t.Run("create mirrors to the company ledger", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, path, map[string]any{
			"description": "Brake pads", "amount": "120.456", "category": "parts",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := decode[ledgerapp.CreateExpenseResult](t, env)
		assert.Equal(t, "120.46", result.Expense.Amount.StringFixed(2))
		assert.Equal(t, "Parts", result.Expense.Category)
		assert.True(t, result.Expense.Deletable)
		assert.False(t, result.ReceiptDegraded)

		var posting models.LedgerPostingModel
		require.NoError(t, api.db.Where("source_expense_id = ?", result.Expense.ID).First(&posting).Error)
		assert.Equal(t, ledger.AccountCategoryReconditioning, posting.CategoryName)
		assert.Equal(t, "Brake pads (2019 Toyota Camry)", posting.Description)

		var entry models.OutboxEntryModel
		require.NoError(t, api.db.Where("aggregate_id = ?", result.Expense.ID).First(&entry).Error)
		assert.Equal(t, shared.OutboxStatusSent, entry.Status)
	})

	t.Run("missing amount is invalid", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, path, map[string]any{"description": "Tow"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION_AMOUNT", env.Error.Code)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/vehicles/"+uuid.NewString()+"/expenses", map[string]any{
			"description": "Tow", "amount": "50",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
	})

	t.Run("bank rows are listed but cannot be deleted", func(t *testing.T) {
		txn := &ledger.BankTransaction{
			ID: uuid.New(), DealerID: api.dealerID, VehicleID: &v.ID, MerchantName: "Shell",
			Amount: decimal.NewFromInt(-45), TransactionDate: time.Now().Add(time.Hour), Status: "booked",
		}
		require.NoError(t, api.bank.Save(context.Background(), txn))

		w, env := api.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decode[[]ledgerapp.ExpenseResponse](t, env)
		require.Len(t, rows, 2)
		assert.Equal(t, "Shell", rows[0].Description)
		assert.Equal(t, "45", rows[0].Amount.String())
		assert.False(t, rows[0].Deletable)

		w, env = api.do(t, http.MethodDelete, "/expenses/"+txn.ID.String(), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_ILLEGAL_DELETION", env.Error.Code)
	})

	t.Run("delete manual expense", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, path, map[string]any{"description": "Gas", "amount": "30", "category": "Fuel"})
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[ledgerapp.CreateExpenseResult](t, env)

		w, _ = api.do(t, http.MethodDelete, "/expenses/"+created.Expense.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = api.do(t, http.MethodGet, "/expenses/"+created.Expense.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var postings int64
		require.NoError(t, api.db.Model(&models.LedgerPostingModel{}).
			Where("source_expense_id = ?", created.Expense.ID).Count(&postings).Error)
		assert.Equal(t, int64(1), postings)
	})
}

func multipartExpense(t *testing.T, fields map[string]string, receipt []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if receipt != nil {
		part, err := mw.CreateFormFile(handler.ReceiptField, "receipt.png")
		require.NoError(t, err)
		_, err = part.Write(receipt)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestExpenseEndpoints_Receipt(t *testing.T) {
	description := "Valvoline oil change"
	amount := decimal.RequireFromString("64.99")
	category := ledger.ExpenseCategoryRepair
	extractor := &stubExtractor{suggestion: &ledger.ReceiptSuggestion{Description: &description, Amount: &amount, Category: &category}}
	api := newLedgerAPI(t, extractor)
	v := api.createVehicle(t, "8000", "9500")
	path := "/api/v1/vehicles/" + v.ID.String() + "/expenses"
	png := []byte("\x89PNG\r\n\x1a\nfake")

	t.Run("receipt fills empty fields only", func(t *testing.T) {
		body, contentType := multipartExpense(t, map[string]string{"description": "Oil change"}, png)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)

		w, env := api.serve(t, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := decode[ledgerapp.CreateExpenseResult](t, env)
		assert.Equal(t, "Oil change", result.Expense.Description)
		assert.Equal(t, "64.99", result.Expense.Amount.StringFixed(2))
		assert.Equal(t, "Repair", result.Expense.Category)
		assert.Equal(t, 1, extractor.calls)
	})

	t.Run("failed extraction still saves typed fields", func(t *testing.T) {
		extractor.err = assert.AnError
		defer func() { extractor.err = nil }()

		body, contentType := multipartExpense(t, map[string]string{"description": "Wash", "amount": "20"}, png)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)

		w, env := api.serve(t, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := decode[ledgerapp.CreateExpenseResult](t, env)
		assert.True(t, result.ReceiptDegraded)
		assert.Equal(t, "Other", result.Expense.Category)
	})

	t.Run("extract endpoint", func(t *testing.T) {
		body, contentType := multipartExpense(t, nil, png)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/extract", body)
		req.Header.Set("Content-Type", contentType)

		w, env := api.serve(t, req)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[ledgerapp.ReceiptSuggestionResponse](t, env)
		require.NotNil(t, got.Description)
		assert.Equal(t, description, *got.Description)
		assert.False(t, got.Degraded)
	})

	t.Run("extract without image", func(t *testing.T) {
		body, contentType := multipartExpense(t, map[string]string{"note": "x"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/extract", body)
		req.Header.Set("Content-Type", contentType)

		w, _ := api.serve(t, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCommissionAndProfitEndpoints(t *testing.T) {
	api := newLedgerAPI(t, nil)
	v := api.createVehicle(t, "10000", "13000")

	w, env := api.do(t, http.MethodPost, "/commission-roles", map[string]any{
		"role_name": "Sales", "helper_rate": "0.10", "specialist_rate": "0.15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	role := decode[ledgerapp.RoleResponse](t, env)

	w, env = api.do(t, http.MethodPost, "/employees", map[string]any{"name": "Dana", "roles": []string{"sales"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	employee := decode[ledgerapp.EmployeeResponse](t, env)

	t.Run("rate inversion is rejected", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/commission-roles", map[string]any{
			"role_name": "Finance", "helper_rate": "0.20", "specialist_rate": "0.10",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION_RATE_INVERSION", env.Error.Code)
	})

	var grantedID uuid.UUID
	t.Run("specialist grant", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/vehicles/"+v.ID.String()+"/commissions", map[string]any{
			"employee_id": employee.ID, "role_id": role.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		c := decode[ledgerapp.CommissionResponse](t, env)
		assert.True(t, c.IsSpecialist)
		assert.Equal(t, "450", c.Amount.String())
		grantedID = c.ID
	})

	t.Run("override outside range", func(t *testing.T) {
		w, env := api.do(t, http.MethodPost, "/vehicles/"+v.ID.String()+"/commissions", map[string]any{
			"employee_id": employee.ID, "role_id": role.ID, "override_percent": "150",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION_RATE", env.Error.Code)
	})

	t.Run("profit summary", func(t *testing.T) {
		w, _ := api.do(t, http.MethodPost, "/vehicles/"+v.ID.String()+"/expenses", map[string]any{
			"description": "Detail", "amount": "200", "category": "Detail",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w, env := api.do(t, http.MethodGet, "/vehicles/"+v.ID.String()+"/profit", nil)
		require.Equal(t, http.StatusOK, w.Code)
		s := decode[ledgerapp.ProfitSummaryResponse](t, env)
		assert.Equal(t, "10200", s.TotalCost.String())
		assert.Equal(t, "2800", s.GrossProfit.String())
		assert.Equal(t, "2350", s.NetProfit.String())
		assert.Equal(t, 1, s.CommissionCount)
	})

	t.Run("ledger workbook", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/"+v.ID.String()+"/ledger.xlsx", nil)
		w, _ := api.serve(t, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.Equal(t, "PK", w.Body.String()[:2])
	})

	t.Run("delete commission", func(t *testing.T) {
		w, _ := api.do(t, http.MethodDelete, "/commissions/"+grantedID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env := api.do(t, http.MethodGet, "/vehicles/"+v.ID.String()+"/commissions", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]ledgerapp.CommissionResponse](t, env))
	})
}

func TestOutboxEndpoints(t *testing.T) {
	api := newLedgerAPI(t, nil)
	v := api.createVehicle(t, "1000", "1500")
	w, _ := api.do(t, http.MethodPost, "/vehicles/"+v.ID.String()+"/expenses", map[string]any{"description": "Tow", "amount": "75"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := api.do(t, http.MethodGet, "/system/outbox/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[eventapp.OutboxStatsDTO](t, env)
	assert.Equal(t, int64(1), stats.Sent)
	assert.Equal(t, int64(0), stats.Dead)

	w, _ = api.do(t, http.MethodGet, "/system/outbox/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	api := newLedgerAPI(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w, env := api.serve(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[handler.HealthResponse](t, env)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "skipped", resp.Database)
}
