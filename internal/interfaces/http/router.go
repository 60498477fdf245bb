package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/usecase"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *usecase.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *usecase.MovementUseCase
	JWTSecret  string
	// LoginPerMinute limita los intentos de login por IP; 0 = sin límite.
	LoginPerMinute int
}

// NewApp crea la aplicación Fiber con recover, request id, log de peticiones y el
// ErrorHandler del backend.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API. Las rutas aceptan la barra final o no
// (StrictRouting desactivado).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (login y refresh públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginPerMinute > 0 {
		authGroup.Post("/login/", limiter.New(limiter.Config{
			Max:        deps.LoginPerMinute,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.DetailResponse{Detail: "Pedido foi estrangulado."})
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login/", authHandler.Login)
	}
	authGroup.Post("/refresh/", authHandler.Refresh)
	authGroup.Post("/logout/", requireAuth, authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	products := api.Group("/produtos", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id/", productHandler.GetByID)
	products.Put("/:id/", productHandler.Update)
	products.Delete("/:id/", productHandler.Delete)

	movements := api.Group("/movimentacoes", requireAuth)
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id/", movementHandler.GetByID)
	movements.Put("/:id/", movementHandler.Update)
	movements.Delete("/:id/", movementHandler.Delete)
}
