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

	"github.com/jhoicas/cadena-api/internal/application/auth"
	"github.com/jhoicas/cadena-api/internal/application/condition"
	"github.com/jhoicas/cadena-api/internal/application/credit"
	"github.com/jhoicas/cadena-api/internal/application/stock"
	"github.com/jhoicas/cadena-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/cadena-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/cadena-api/internal/interfaces/http"
	"github.com/jhoicas/cadena-api/pkg/config"
	"github.com/jhoicas/cadena-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	historyRepo := postgres.NewStockHistoryRepository(pool)
	scheduleRepo := postgres.NewPaymentScheduleRepository(pool)
	conditionLogRepo := postgres.NewConditionLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de estadísticas: Redis si está configurado, si no la app funciona
	// directo contra la DB.
	var statsCache condition.StatsCache = condition.NoopStatsCache{}
	if cfg.Redis.Addr != "" {
		cache, err := infraredis.NewStatsCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer cache.Close()
		statsCache = cache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de estadísticas en Redis habilitada")
	}

	transactionUC := stock.NewCreateTransactionUseCase(
		txRunner, productRepo, branchRepo, customerRepo, userRepo, transactionRepo, historyRepo,
	)
	scheduleUC := credit.NewUpdateScheduleUseCase(
		txRunner, scheduleRepo, transactionRepo, customerRepo, userRepo,
	)
	conditionUC := condition.NewApplyUseCase(
		txRunner, productRepo, branchRepo, conditionLogRepo, statsCache,
	)
	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Cadena API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TransactionUC: transactionUC,
		ScheduleUC:    scheduleUC,
		ConditionUC:   conditionUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
