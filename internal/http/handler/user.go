package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/schema"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// CreateUser handles POST /user.
//
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param user body createUserRequest true "user payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errorPayload
// @Router /user [post]
func CreateUser(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		user, err := users.CreateOne(c.UserContext(), model.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeRepositoryError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// ListUsers handles GET /user with page/limit query parameters.
//
// @Summary List users, paginated
// @Tags User
// @Produce json
// @Param page query int false "page number, 1-based"
// @Param limit query int false "page size"
// @Success 200 {object} repository.PageResult[model.User]
// @Router /user [get]
func ListUsers(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := pageOptions(c)

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{}}},
			{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		}
		page, err := users.Paginate(c.UserContext(), pipeline, opts)
		if err != nil {
			return writeRepositoryError(c, err)
		}
		return c.JSON(page)
	}
}

// GetUser handles GET /user/:id.
//
// @Summary Fetch a user by id
// @Tags User
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} model.User
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /user/{id} [get]
func GetUser(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.FindByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeRepositoryError(c, err)
		}
		if user == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
		}
		return c.JSON(user)
	}
}

// UpdateUser handles PATCH /user/:id. Only the provided fields are patched;
// the post-update document is returned.
//
// @Summary Partially update a user
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param user body updateUserRequest true "fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errorPayload
// @Router /user/{id} [patch]
func UpdateUser(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		patch := bson.M{}
		if req.Name != nil {
			patch["name"] = *req.Name
		}
		if req.Email != nil {
			patch["email"] = *req.Email
		}
		if req.Password != nil {
			patch["password"] = *req.Password
		}

		user, err := users.UpdateByID(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return writeRepositoryError(c, err)
		}
		return c.JSON(user)
	}
}

// DeleteUser handles DELETE /user/:id. Absence is not an error.
//
// @Summary Delete a user
// @Tags User
// @Param id path string true "user id"
// @Success 204
// @Failure 400 {object} errorPayload
// @Router /user/{id} [delete]
func DeleteUser(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := users.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
			return writeRepositoryError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// pageOptions reads page/limit from the query string, clamping both to >= 1.
func pageOptions(c *fiber.Ctx) repository.PageOptions {
	return repository.PageOptions{
		Page:  clampMin(c.QueryInt("page", 1), 1),
		Limit: clampMin(c.QueryInt("limit", 10), 1),
	}
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// writeRepositoryError maps repository failures onto the error envelope:
// malformed ids and field validation are the client's fault, everything else
// (duplicate key, connectivity) surfaces as a generic 5xx.
func writeRepositoryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrInvalidID) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return writeErrorDetails(c, fiber.StatusBadRequest, "INVALID_FIELDS", "invalid fields", verr.Errors)
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
