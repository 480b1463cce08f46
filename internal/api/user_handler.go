package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"ecommerce-api/internal/entity"
	"ecommerce-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRequest is the create/update payload for a user.
type UserRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// GetUsers retrieves all users --> GET /users
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.GetUsers(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, users)
}

// GetUserByID retrieves a user by ID --> GET /users/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	user, err := h.userService.GetUserByID(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "User not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, user)
}

// CreateUser creates a new user --> POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	req := UserRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(400, map[string]interface{}{"errors": validationMessages(err)})
	}

	user := entity.User{Name: req.Name, Address: req.Address, Email: req.Email}
	createdUser, err := h.userService.CreateUser(c.Request().Context(), &user)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			return c.JSON(409, map[string]string{"error": "Email already registered"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(201, createdUser)
}

// UpdateUser updates a user by ID --> PUT /users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	req := UserRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(400, map[string]interface{}{"errors": validationMessages(err)})
	}

	user := entity.User{ID: idInt, Name: req.Name, Address: req.Address, Email: req.Email}
	updatedUser, err := h.userService.UpdateUser(c.Request().Context(), &user)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(400, map[string]string{"error": "Invalid user id"})
		}
		if errors.Is(err, service.ErrDuplicateEmail) {
			return c.JSON(409, map[string]string{"error": "Email already registered"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, updatedUser)
}

// DeleteUser deletes a user by ID --> DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	err = h.userService.DeleteUser(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(400, map[string]string{"error": "Invalid user id"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": fmt.Sprintf("successfully deleted user %d", idInt)})
}
