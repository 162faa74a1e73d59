package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panaderia-api/internal/application/auth"
	"github.com/jhoicas/Panaderia-api/internal/application/catalog"
	costingapp "github.com/jhoicas/Panaderia-api/internal/application/costing"
	"github.com/jhoicas/Panaderia-api/internal/application/finance"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/application/orders"
	"github.com/jhoicas/Panaderia-api/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CatalogUC    *catalog.UseCase
	InventoryUC  *inventory.UseCase
	CostingUC    *costingapp.UseCase
	ProductionUC *production.UseCase
	OrdersUC     *orders.UseCase
	FinanceUC    *finance.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo excepto /api/auth/login exige
// Bearer Token; las rutas de administración exigen además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireAdmin()

	// Ingredients
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.CatalogUC, deps.InventoryUC, deps.CostingUC)
	ingredients.Post("/", admin, ingredientHandler.Create)
	ingredients.Put("/:id", admin, ingredientHandler.Update)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id/average-cost", ingredientHandler.AverageCost)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/balance/:ingredientId", inventoryHandler.Balance)

	// Products (mutaciones solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.CostingUC)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/cost", productHandler.Cost)

	// Recipes (mutaciones solo admin)
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.CatalogUC)
	recipes.Post("/", admin, recipeHandler.Upsert)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/product/:productId", recipeHandler.GetByProduct)

	// Production
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	prod.Post("/batches", productionHandler.CreateBatch)
	prod.Get("/batches", productionHandler.ListBatches)
	prod.Get("/batches/:id", productionHandler.GetBatch)
	prod.Post("/batches/:id/finish", productionHandler.FinishBatch)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CatalogUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Orders (delete solo admin)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", admin, orderHandler.Delete)

	// Finance
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	protected.Post("/expenses", financeHandler.CreateExpense)
	protected.Get("/expenses", financeHandler.ListExpenses)
	protected.Get("/cashbook", financeHandler.ListCashbook)
	protected.Post("/finance/cash-close", financeHandler.CashClose)
	protected.Get("/reports/sales-monthly", financeHandler.MonthlySales)
	protected.Get("/reports/profit-monthly", financeHandler.MonthlyProfit)

	// Settings (solo admin)
	settings := protected.Group("/settings", admin)
	userHandler := NewUserHandler(deps.AuthUC)
	settings.Post("/users", userHandler.Create)
	settings.Get("/users", userHandler.List)
	settings.Put("/users/:id", userHandler.Update)
	overheadHandler := NewOverheadHandler(deps.CatalogUC)
	settings.Post("/overhead", overheadHandler.Create)
	settings.Get("/overhead", overheadHandler.GetCurrent)
}
