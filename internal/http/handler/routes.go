package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"todoapi/internal/http/middleware"
	"todoapi/internal/repository"
	"todoapi/internal/validation"
)

// Pinger is the narrow health-check surface of the database client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthCheck reports whether the database responds to a ping.
//
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches the HTTP routes, each gated by its request
// validation middleware.
func RegisterRoutes(app *fiber.App, db Pinger, users repository.UserRepository, todos repository.TodoRepository) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	objectID := middleware.FieldRules{"id": validation.ObjectID()}

	user := app.Group("/user")
	user.Post("/",
		middleware.ValidateRequest(
			[]string{"name", "email", "password"},
			middleware.FieldRules{
				"name":     validation.String(),
				"email":    validation.Email().WithMessage("invalid email"),
				"password": validation.MinLength(6).WithMessage("password must be at least 6 characters"),
			},
			middleware.SourceBody,
		),
		CreateUser(users),
	)
	user.Get("/", ListUsers(users))
	user.Get("/:id", middleware.ValidateRequest([]string{"id"}, objectID, middleware.SourceParams), GetUser(users))
	user.Patch("/:id", middleware.ValidateRequest([]string{"id"}, objectID, middleware.SourceParams), UpdateUser(users))
	user.Delete("/:id", middleware.ValidateRequest([]string{"id"}, objectID, middleware.SourceParams), DeleteUser(users))

	todo := app.Group("/todo")
	todo.Post("/",
		middleware.ValidateRequest(
			[]string{"description", "userId"},
			middleware.FieldRules{
				"description": validation.String(),
				"userId":      validation.ObjectID(),
			},
			middleware.SourceBody,
		),
		CreateTodo(todos),
	)
	todo.Get("/", ListTodos(todos))
	todo.Get("/user/:userId",
		middleware.ValidateRequest([]string{"userId"}, middleware.FieldRules{"userId": validation.ObjectID()}, middleware.SourceParams),
		ListTodosByUser(todos),
	)
	todo.Get("/:id", GetTodo(todos))
	todo.Patch("/:id/toggle", ToggleTodo(todos))
	todo.Put("/:id/toggle", ToggleTodo(todos))
	todo.Delete("/:id", DeleteTodo(todos))
}
