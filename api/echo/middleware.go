package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/guard"
	"github.com/shulehub/shule/core/session"
)

// guardMiddleware evaluates the route guard on every attempted navigation to
// a guarded view.
func guardMiddleware(grd *guard.Guard, sessions *session.Store, required auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			p, ok := sessions.Current()

			decision := grd.Authorize(p, ok, ctx.Request().URL.Path, required)
			switch decision.Verdict {
			case guard.Allow:
				return next(ctx)
			case guard.RedirectToLogin:
				return errUnauthenticated
			default: // guard.RedirectToOwnDashboard
				return ctx.Redirect(http.StatusSeeOther, decision.Target.Path)
			}
		}
	}
}
