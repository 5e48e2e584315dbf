package router

import (
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/interfaces/http/handler"
)

// LedgerHandlers are the handlers behind the ledger API
type LedgerHandlers struct {
	Vehicles    *handler.VehicleHandler
	Employees   *handler.EmployeeHandler
	Expenses    *handler.ExpenseHandler
	Commissions *handler.CommissionHandler
	Roles       *handler.RoleHandler
	Profit      *handler.ProfitHandler
	Receipts    *handler.ReceiptHandler
	Outbox      *handler.OutboxHandler
}

// RegisterLedger adds the ledger's domain groups to r
func RegisterLedger(r *Router, h LedgerHandlers) {
	vehicles := NewDomainGroup("vehicles", "/vehicles")
	vehicles.POST("", h.Vehicles.Register)
	vehicles.GET("", h.Vehicles.List)
	vehicles.GET("/:id", h.Vehicles.Get)
	vehicles.PUT("/:id/prices", h.Vehicles.UpdatePrices)
	vehicles.GET("/:id/expenses", h.Expenses.List)
	vehicles.POST("/:id/expenses", h.Expenses.Create)
	vehicles.GET("/:id/commissions", h.Commissions.List)
	vehicles.POST("/:id/commissions", h.Commissions.Grant)
	vehicles.GET("/:id/profit", h.Profit.Summary)
	vehicles.GET("/:id/ledger.xlsx", h.Profit.Export)

	employees := NewDomainGroup("employees", "/employees")
	employees.POST("", h.Employees.Register)
	employees.GET("/:id", h.Employees.Get)

	expenses := NewDomainGroup("expenses", "/expenses")
	expenses.GET("/:id", h.Expenses.Get)
	expenses.DELETE("/:id", h.Expenses.Delete)

	commissions := NewDomainGroup("commissions", "/commissions")
	commissions.GET("/:id", h.Commissions.Get)
	commissions.DELETE("/:id", h.Commissions.Delete)

	roles := NewDomainGroup("commission-roles", "/commission-roles")
	roles.GET("", h.Roles.List)
	roles.POST("", h.Roles.Create)
	roles.GET("/:id", h.Roles.Get)
	roles.PUT("/:id", h.Roles.UpdateRates)

	receipts := NewDomainGroup("receipts", "/receipts")
	receipts.POST("/extract", h.Receipts.Extract)

	system := NewDomainGroup("system", "/system")
	outbox := system.Group("outbox", "/outbox")
	outbox.GET("/stats", h.Outbox.GetStats)
	outbox.GET("/dead", h.Outbox.GetDeadLetterEntries)
	outbox.POST("/retry-all", h.Outbox.RetryAllDeadEntries)
	outbox.GET("/:id", h.Outbox.GetEntry)
	outbox.POST("/:id/retry", h.Outbox.RetryDeadEntry)

	r.Register(vehicles).
		Register(employees).
		Register(expenses).
		Register(commissions).
		Register(roles).
		Register(receipts).
		Register(system)
}
