// Package server assembles the Fiber application from the configured dependencies.
package server

import (
	"context"
	"time"

	"cookbook/internal/config"
	"cookbook/internal/handlers"
	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/repositories"
	"cookbook/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps are the collaborators of the HTTP application. Publisher and Limiter are optional.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Publisher services.EventPublisher
	Limiter   middleware.Limiter
	Log       *logger.Logger
	Registry  *prometheus.Registry
}

// NewApp wires services, handlers and middleware into a Fiber app.
func NewApp(d Deps) *fiber.App {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	store := repositories.NewStore(d.DB)
	authService := services.NewAuthService(store.Users, d.Config.JWTSecret, d.Config.JWTExpiresIn, log)
	recipeService := services.NewRecipeService(store, d.Publisher, log)
	ratingService := services.NewRatingService(store, d.Publisher, log)
	categoryService := services.NewCategoryService(store)
	ingredientService := services.NewIngredientService(store)

	app := fiber.New(fiber.Config{
		AppName:      "cookbook",
		ErrorHandler: handlers.ErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.NewMetrics(registry).Handler())
	app.Use(middleware.RequestLogger(log))

	app.Get("/health", healthHandler(d.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.Gatherers{registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)))

	var limiter []fiber.Handler
	if d.Limiter != nil {
		limiter = append(limiter, middleware.RateLimit(d.Limiter, log))
	}
	writeGuards := append([]fiber.Handler{middleware.AuthRequired(authService, log)}, limiter...)

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, log).RegisterRoutes(apiV1, limiter...)
	handlers.NewRecipeHandler(recipeService, log).RegisterRoutes(apiV1, writeGuards...)
	handlers.NewRatingHandler(ratingService, log).RegisterRoutes(apiV1, writeGuards...)
	handlers.NewCategoryHandler(categoryService, log).RegisterRoutes(apiV1, writeGuards...)
	handlers.NewIngredientHandler(ingredientService, log).RegisterRoutes(apiV1, writeGuards...)

	return app
}

// NewRegistry returns a registry for the HTTP collectors plus build information.
// Go runtime and process metrics come from the default gatherer.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewBuildInfoCollector())
	return reg
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, health, database := fiber.StatusOK, "healthy", "up"
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status, health, database = fiber.StatusServiceUnavailable, "unhealthy", "down"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
