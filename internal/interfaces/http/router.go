package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadena-api/internal/application/auth"
	"github.com/jhoicas/cadena-api/internal/application/condition"
	"github.com/jhoicas/cadena-api/internal/application/credit"
	"github.com/jhoicas/cadena-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransactionUC *stock.CreateTransactionUseCase
	ScheduleUC    *credit.UpdateScheduleUseCase
	ConditionUC   *condition.ApplyUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Transacciones de inventario (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Delete("/:id", RequireRole("admin"), transactionHandler.Remove)

	// Historial de stock por producto (protegido)
	products := protected.Group("/products")
	products.Get("/:id/history", transactionHandler.ProductHistory)

	// Cuotas de crédito (protegido)
	schedules := protected.Group("/payment-schedules")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedules.Put("/:id", scheduleHandler.Update)
	schedules.Get("/:id", scheduleHandler.GetByID)

	// Condición de producto (protegido)
	conditions := protected.Group("/condition-logs")
	conditionHandler := NewConditionHandler(deps.ConditionUC)
	conditions.Post("/", conditionHandler.Apply)
	conditions.Get("/statistics", conditionHandler.Statistics)
}
