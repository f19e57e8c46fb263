package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schooladmin/school-api/internal/api/metrics"
	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/core/ports"
)

const principalKey = "principal"

// SetPrincipal stores the resolved principal on the request context.
// Exposed so tests can inject an identity without going through Basic auth.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal resolved for this request, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// LoginGuard throttles repeated failed logins. Implementations live at the
// transport edge; a nil guard disables throttling.
type LoginGuard interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// Authenticate resolves the request's Basic credentials to a Principal via
// the credential verifier and injects it into the context. Every request
// without a resolvable identity stops here with 401.
func Authenticate(verifier ports.AuthService, guard LoginGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, secret, ok := c.Request().BasicAuth()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			ctx := c.Request().Context()
			if guard != nil {
				// Fail open on guard errors; throttling must not take
				// authentication down with it.
				if blocked, err := guard.TooManyFailures(ctx, username); err == nil && blocked {
					metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
					return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed login attempts")
				}
			}

			principal, err := verifier.Verify(ctx, username, secret)
			if err != nil {
				metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
				if guard != nil {
					_ = guard.RecordFailure(ctx, username)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
			if guard != nil {
				_ = guard.Reset(ctx, username)
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}
