package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olympicapp/country-comments/internal/api/metrics"
	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// AdminHandler serves the user management endpoints. The admin check lives in
// the service so it runs before any lookup.
type AdminHandler struct {
	adminService ports.UserAdminService
}

func NewAdminHandler(adminService ports.UserAdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Nickname is checked by the admin workflow, after the id lookup.
type updateUserRequest struct {
	Nickname string `json:"nickname"`
}

func recordAdmin(action string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	default:
		result = "error"
	}
	metrics.AdminActionsTotal.WithLabelValues(action, result).Inc()
}

// ListUsers returns every account, without passwords.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  StatusResponse
// @Router       /api/users/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	users, err := h.adminService.ListUsers(c.Request().Context(), sess)
	recordAdmin("list_users", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser replaces a user's nickname.
//
// @Summary      Update a user's nickname
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User ID"
// @Param        body  body      updateUserRequest  true  "New nickname"
// @Success      200   {object}  StatusResponse
// @Failure      400   {object}  StatusResponse
// @Failure      403   {object}  StatusResponse
// @Failure      404   {object}  StatusResponse
// @Router       /api/users/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.adminService.UpdateUser(c.Request().Context(), sess, id, req.Nickname)
	recordAdmin("update_user", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack("User updated successfully"))
}

// DeleteUser removes a user. Admins cannot delete their own account.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  StatusResponse
// @Router       /api/users/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	err = h.adminService.DeleteUser(c.Request().Context(), sess, id)
	recordAdmin("delete_user", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack("User deleted successfully"))
}
