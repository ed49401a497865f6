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

	_ "github.com/jhoicas/Restaurante-api/docs"
	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/application/reports"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	infracache "github.com/jhoicas/Restaurante-api/internal/infrastructure/cache"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// txRunner agrupa las dos formas de transacción que exponen ambos backends.
type txRunner interface {
	inventory.TxRunner
	sales.TxRunner
}

// backend repositorios de lectura y runner transaccional de un driver de almacenamiento.
type backend struct {
	tx          txRunner
	ingredients repository.IngredientRepository
	movements   repository.MovementRepository
	products    repository.ProductRepository
	recipes     repository.RecipeRepository
	sales       repository.SaleRepository
	expenses    repository.ExpenseRepository
	analytics   repository.AnalyticsRepository
	users       repository.UserRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer store.close()

	// Caché del CMV por producto: Redis si está configurado, si no sin caché.
	var costCache recipe.RecipeCostCache = infracache.NoopRecipeCostCache{}
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisRecipeCostCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché de costos deshabilitada")
			_ = redisCache.Close()
		} else {
			costCache = redisCache
			defer redisCache.Close()
		}
	}

	ledgerUC := inventory.NewLedgerUseCase(store.tx, store.ingredients, store.movements, log)
	catalogUC := recipe.NewCatalogUseCase(store.products, store.recipes, store.ingredients, costCache, cfg.Redis.RecipeCostTTL, log)
	ledgerUC.SetCostObserver(catalogUC)

	commitSaleUC := sales.NewCommitSaleUseCase(store.tx, ledgerUC, store.products, cfg.Inventory.SaleConflictRetries, log)
	receiptUC := sales.NewReceiptUseCase(store.sales, store.products, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	reportUC := reports.NewReportUseCase(store.analytics, store.ingredients, store.expenses)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

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
		Title:    "Restaurante API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:     ledgerUC,
		Catalog:    catalogUC,
		CommitSale: commitSaleUC,
		Receipt:    receiptUC,
		Reports:    reportUC,
		Auth:       authUC,
		JWTSecret:  cfg.JWT.Secret,
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

// openBackend construye los repositorios del driver configurado.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		st := memory.New(cfg.Inventory.LockTimeout)
		return &backend{
			tx:          st,
			ingredients: st.Ingredients(),
			movements:   st.Movements(),
			products:    st.Products(),
			recipes:     st.Recipes(),
			sales:       st.Sales(),
			expenses:    st.Expenses(),
			analytics:   st.Analytics(),
			users:       st.Users(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		tx:          postgres.NewTxRunner(pool, cfg.Inventory.LockTimeout),
		ingredients: postgres.NewIngredientRepository(pool),
		movements:   postgres.NewMovementRepository(pool),
		products:    postgres.NewProductRepository(pool),
		recipes:     postgres.NewRecipeRepository(pool),
		sales:       postgres.NewSaleRepository(pool),
		expenses:    postgres.NewExpenseRepository(pool),
		analytics:   postgres.NewAnalyticsRepository(pool),
		users:       postgres.NewUserRepository(pool),
		close:       pool.Close,
	}, nil
}
