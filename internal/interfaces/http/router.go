package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farm-stand/internal/application/dto"
	"github.com/jhoicas/farm-stand/internal/application/usecase"
	"github.com/jhoicas/farm-stand/pkg/config"
	"github.com/jhoicas/farm-stand/web"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	ProductUC *usecase.ProductUseCase
	Views     config.ViewsConfig
	Logger    zerolog.Logger
}

// NewApp construye la aplicación Fiber con motor de vistas, middlewares y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		Views:        web.NewEngine(deps.Views),
		ViewsLayout:  "layouts/main",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	Router(app, deps)
	return app
}

// Router registra middlewares y rutas. Los middlewares van primero: MethodOverride
// cambia el verbo y Fiber sigue buscando en la pila de ese verbo.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	}))
	app.Use(RequestLogger(deps.Logger))
	app.Use(MethodOverride())

	if deps.Views.StaticDir != "" {
		app.Static("/public", deps.Views.StaticDir)
	} else {
		app.Use("/public", filesystem.New(filesystem.Config{Root: nethttp.FS(web.Public())}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := deps.ProductUC.Ping(ctx); err != nil {
			deps.Logger.Error().Err(err).Msg("health check")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Service: deps.AppName, Store: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.AppName, Store: "up"})
	})

	// Products ("/new" antes de "/:id")
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Logger)
	products.Get("/new", productHandler.New)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.Show)
	products.Get("/:id/edit", productHandler.Edit)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}
