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

	"github.com/tu-usuario/floreria-ops/internal/application/finance"
	"github.com/tu-usuario/floreria-ops/internal/application/ledger"
	"github.com/tu-usuario/floreria-ops/internal/application/orders"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/cache"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/floreria-ops/internal/interfaces/http"
	"github.com/tu-usuario/floreria-ops/pkg/config"
	"github.com/tu-usuario/floreria-ops/pkg/logger"
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

	// Caché de último valor conocido de stock. Sin REDIS_ADDR se usa la no-op:
	// las lecturas siguen funcionando, solo que sin fallback ante caídas de DB.
	var stockCache cache.StockCache = cache.NoopStockCache{}
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisStockCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, caché de stock desactivada")
		} else {
			stockCache = redisCache
			defer redisCache.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de stock en Redis activa")
		}
	}

	catalogRepo := postgres.NewCatalogRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, catalogRepo, stockRepo, movementRepo, stockCache)
	orderUC := orders.NewUseCase(txRunner, ledgerUC, catalogRepo, clientRepo, orderRepo)
	catalogUC := usecase.NewCatalogUseCase(txRunner, catalogRepo, stockRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	financeUC := finance.NewUseCase(orderRepo, expenseRepo)

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
		Title:    "Florería Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		ClientUC:  clientUC,
		ExpenseUC: expenseUC,
		LedgerUC:  ledgerUC,
		OrderUC:   orderUC,
		FinanceUC: financeUC,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
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
