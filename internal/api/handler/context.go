package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schooladmin/school-api/internal/api/middleware"
	"github.com/schooladmin/school-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Authenticate
// middleware. Its presence proves the resolver ran; a handler reached
// without it fails closed with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}
