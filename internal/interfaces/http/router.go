package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/floreria-ops/internal/application/finance"
	"github.com/tu-usuario/floreria-ops/internal/application/ledger"
	"github.com/tu-usuario/floreria-ops/internal/application/orders"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *usecase.CatalogUseCase
	ClientUC  *usecase.ClientUseCase
	ExpenseUC *usecase.ExpenseUseCase
	LedgerUC  *ledger.UseCase
	OrderUC   *orders.UseCase
	FinanceUC *finance.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	items := api.Group("/items")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	items.Post("/", catalogHandler.Create)
	items.Get("/", catalogHandler.List)
	items.Get("/:id", catalogHandler.GetByID)
	items.Put("/:id", catalogHandler.Update)

	// Stock y kardex. "critical" va antes de ":itemId" para que Fiber no lo
	// capture como parámetro.
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Post("/movements/batch", stockHandler.RegisterBatch)
	stock.Get("/critical", stockHandler.Critical)
	stock.Get("/:itemId", stockHandler.GetStock)
	stock.Get("/:itemId/kardex", stockHandler.Kardex)

	// Pedidos
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)

	// Clientes
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Gastos fijos
	expenses := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Finanzas
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	api.Get("/finance/summary", financeHandler.Summary)
}
