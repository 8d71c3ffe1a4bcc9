package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"alemsite/internal/model"
	"alemsite/internal/service"
)

// UserHandler handles dashboard user administration endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a manual user creation request.
type CreateUserRequest struct {
	Phone    string     `json:"phone" validate:"required"`
	Name     string     `json:"name"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"omitempty,oneof=admin moderator user"`
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role model.Role `json:"role" validate:"required,oneof=admin moderator user"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter, 'all' for no filter"
// @Param search query string false "Substring match on phone"
// @Success 200 {object} Envelope
// @Router /dashboard/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context(), model.Role(c.QueryParam("role")), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, users, len(users))
}

// Create godoc
// @Summary Create a user manually
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /dashboard/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), req.Phone, req.Name, req.Password, req.Role)
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusCreated, "user created successfully", user)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /dashboard/users/{id} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "user role updated successfully", user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /dashboard/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "user deleted successfully", struct{}{})
}
