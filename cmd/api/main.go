package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Panaderia-api/internal/application/auth"
	"github.com/jhoicas/Panaderia-api/internal/application/catalog"
	costingapp "github.com/jhoicas/Panaderia-api/internal/application/costing"
	"github.com/jhoicas/Panaderia-api/internal/application/finance"
	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/application/orders"
	"github.com/jhoicas/Panaderia-api/internal/application/production"
	"github.com/jhoicas/Panaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Panaderia-api/internal/interfaces/http"
	"github.com/jhoicas/Panaderia-api/pkg/config"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción).
	ingredientRepo := postgres.NewIngredientRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	batchRepo := postgres.NewProductionBatchRepository(pool)
	orderRepo := postgres.NewSalesOrderRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	cashbookRepo := postgres.NewCashbookRepository(pool)
	overheadRepo := postgres.NewOverheadRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(txRunner, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(txRunner, productRepo, recipeRepo, overheadRepo, customerRepo)
	inventoryUC := inventory.NewUseCase(txRunner, ingredientRepo, movementRepo)
	costingUC := costingapp.NewUseCase(movementRepo, recipeRepo, overheadRepo)
	productionUC := production.NewUseCase(txRunner, batchRepo, productRepo)
	ordersUC := orders.NewUseCase(txRunner, orderRepo, customerRepo)
	financeUC := finance.NewUseCase(txRunner, expenseRepo, cashbookRepo, reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Panaderia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		InventoryUC:  inventoryUC,
		CostingUC:    costingUC,
		ProductionUC: productionUC,
		OrdersUC:     ordersUC,
		FinanceUC:    financeUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
