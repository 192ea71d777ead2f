package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olympicapp/country-comments/internal/api/metrics"
	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// UserHandler serves registration, login, profile and logout.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
	Nickname string `json:"nickname" validate:"max=50"`
	// Role is accepted for compatibility and ignored.
	Role string `json:"role,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new USER account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  StatusResponse
// @Failure      400   {object}  StatusResponse
// @Failure      409   {object}  StatusResponse
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameConflict) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, ack("User registered successfully"))
}

// Login checks the credentials and starts an authenticated session.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  StatusResponse
// @Failure      401   {object}  StatusResponse
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), sess, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Status:  http.StatusOK,
		Message: "Login successful",
		Role:    user.Role,
		UserID:  user.ID,
	})
}

// Profile returns the logged-in user's directory record.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  StatusResponse
// @Failure      404  {object}  StatusResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data: profileData{
			ID:       user.ID,
			Username: user.Username,
			Nickname: user.Nickname,
			Role:     user.Role,
		},
	})
}

// Logout ends the session. It succeeds for anonymous callers too.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /api/users/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), sess); err != nil {
		return err
	}

	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, ack("Logout successful"))
}
