package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schooladmin/school-api/internal/core/domain"
)

// AuthHandler exposes the caller's own identity summary.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type identityResponse struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Me returns the resolved principal's identity summary.
//
// @Summary      Who am I
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, identityResponse{
		Username: principal.Username,
		Role:     principal.Role,
	})
}
