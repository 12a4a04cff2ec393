package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

type createTodoRequest struct {
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

// CreateTodo handles POST /todo. New todos start not completed.
//
// @Summary Create a todo
// @Tags Todo
// @Accept json
// @Produce json
// @Param todo body createTodoRequest true "todo payload"
// @Success 201 {object} model.Todo
// @Failure 400 {object} errorPayload
// @Router /todo [post]
func CreateTodo(todos repository.TodoRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createTodoRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid userId format")
		}

		todo, err := todos.CreateOne(c.UserContext(), model.Todo{
			Description: req.Description,
			UserID:      userID,
		})
		if err != nil {
			return writeRepositoryError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(todo)
	}
}

// ListTodos handles GET /todo with page/limit query parameters.
//
// @Summary List todos, paginated
// @Tags Todo
// @Produce json
// @Param page query int false "page number, 1-based"
// @Param limit query int false "page size"
// @Success 200 {object} repository.PageResult[model.Todo]
// @Router /todo [get]
func ListTodos(todos repository.TodoRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := pageOptions(c)

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{}}},
			{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		}
		page, err := todos.Paginate(c.UserContext(), pipeline, opts)
		if err != nil {
			return writeRepositoryError(c, err)
		}
		return c.JSON(page)
	}
}

// ListTodosByUser handles GET /todo/user/:userId. The isCompleted query flag
// keeps three-valued semantics: absent means no completion filter.
//
// @Summary List one user's todos, paginated
// @Tags Todo
// @Produce json
// @Param userId path string true "owning user id"
// @Param page query int false "page number, 1-based"
// @Param limit query int false "page size"
// @Param isCompleted query bool false "filter by completion state"
// @Success 200 {object} repository.PageResult[model.Todo]
// @Failure 400 {object} errorPayload
// @Router /todo/user/{userId} [get]
func ListTodosByUser(todos repository.TodoRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var isCompleted *bool
		if c.Context().QueryArgs().Has("isCompleted") {
			v := c.Query("isCompleted") == "true"
			isCompleted = &v
		}

		page, err := todos.FindByUser(c.UserContext(), c.Params("userId"), pageOptions(c), isCompleted)
		if err != nil {
			return writeRepositoryError(c, err)
		}
		return c.JSON(page)
	}
}

// GetTodo handles GET /todo/:id.
//
// @Summary Fetch a todo by id
// @Tags Todo
// @Produce json
// @Param id path string true "todo id"
// @Success 200 {object} model.Todo
// @Failure 404 {object} errorPayload
// @Router /todo/{id} [get]
func GetTodo(todos repository.TodoRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		todo, err := todos.FindByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeRepositoryError(c, err)
		}
		if todo == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "todo not found")
		}
		return c.JSON(todo)
	}
}

// ToggleTodo handles PATCH|PUT /todo/:id/toggle. The flip is a single atomic
// conditional update, so concurrent toggles cannot lose a write.
//
// @Summary Toggle a todo's completion state
// @Tags Todo
// @Produce json
// @Param id path string true "todo id"
// @Success 200 {object} model.Todo
// @Failure 404 {object} errorPayload
// @Router /todo/{id}/toggle [patch]
func ToggleTodo(todos repository.TodoRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		todo, err := todos.ToggleByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeRepositoryError(c, err)
		}
		if todo == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "todo not found")
		}
		return c.JSON(todo)
	}
}

// DeleteTodo handles DELETE /todo/:id. Absence is not an error.
//
// @Summary Delete a todo
// @Tags Todo
// @Param id path string true "todo id"
// @Success 204
// @Router /todo/{id} [delete]
func DeleteTodo(todos repository.TodoRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := todos.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
			return writeRepositoryError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
