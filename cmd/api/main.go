package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"todoapi/docs"
	"todoapi/internal/config"
	"todoapi/internal/database"
	"todoapi/internal/database/migration"
	handlers "todoapi/internal/http/handler"
	"todoapi/internal/http/middleware"
	"todoapi/internal/otel"
	"todoapi/internal/repository/mongodb"
)

// @title Todo API
// @version 1.0
// @BasePath /
func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Tracing first so the Mongo command monitor has a provider to report to
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(ctx) }()

	// Open the pooled Mongo client (pool sized by MONGODB_MAX_POOL_SIZE)
	client, mongoDB, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	// Initialize repositories over the shared database handle
	db := mongodb.NewDatabase(mongoDB)
	userRepo := mongodb.NewUserMongo(db)
	todoRepo := mongodb.NewTodoMongo(db)

	// Ensure schema-required indexes (unique email, TTL when configured)
	err = migration.EnsureIndexes(ctx, time.UTC, cfg.Mongo.Hostname, []migration.Step{
		{Name: "users_indexes", Run: userRepo.EnsureIndexes},
		{Name: "todos_indexes", Run: todoRepo.EnsureIndexes},
	})
	if err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected repositories
	pinger := handlers.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	handlers.RegisterRoutes(app, pinger, userRepo, todoRepo)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
