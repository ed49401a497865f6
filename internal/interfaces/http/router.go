package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/application/reports"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger     *inventory.LedgerUseCase
	Catalog    *recipe.CatalogUseCase
	CommitSale *sales.CommitSaleUseCase
	Receipt    *sales.ReceiptUseCase
	Reports    *reports.ReportUseCase
	Auth       *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Salvo el login, todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.Auth)
	app.Post("/api/auth/login", authHandler.Login)

	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(jwt.RoleAdmin)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleCashier)

	// Operadores
	protected.Post("/users", adminOnly, authHandler.Register)

	// Ventas
	saleHandler := NewSaleHandler(deps.CommitSale, deps.Receipt)
	salesGroup := protected.Group("/sales", anyRole)
	salesGroup.Post("/", saleHandler.Commit)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.DownloadReceipt)

	// Insumos
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	ingredients := protected.Group("/ingredients")
	ingredients.Post("/", adminOnly, inventoryHandler.Create)
	ingredients.Get("/", anyRole, inventoryHandler.List)
	ingredients.Get("/:id/stock", anyRole, inventoryHandler.Stock)
	ingredients.Get("/:id/movements", adminOnly, inventoryHandler.Movements)
	ingredients.Post("/:id/purchases", adminOnly, inventoryHandler.Purchase)
	ingredients.Post("/:id/losses", adminOnly, inventoryHandler.Loss)
	ingredients.Post("/:id/adjustments", adminOnly, inventoryHandler.Adjust)

	// Carta y recetas
	productHandler := NewProductHandler(deps.Catalog)
	products := protected.Group("/products")
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Get("/:id/recipe", anyRole, productHandler.Recipe)
	products.Put("/:id/recipe/:ingredientId", adminOnly, productHandler.SetRecipeLine)
	products.Delete("/:id/recipe/:ingredientId", adminOnly, productHandler.RemoveRecipeLine)
	products.Get("/:id/recipe-cost", anyRole, productHandler.RecipeCost)

	// Reportes y gastos (solo admin)
	reportHandler := NewReportHandler(deps.Reports)
	reportsGroup := protected.Group("/reports", adminOnly)
	reportsGroup.Get("/pnl", reportHandler.ProfitAndLoss)
	reportsGroup.Get("/margins", reportHandler.Margins)
	reportsGroup.Get("/kpis", reportHandler.KPIs)
	reportsGroup.Get("/replenishment", reportHandler.Replenishment)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	protected.Post("/expenses", adminOnly, reportHandler.CreateExpense)
}
