package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

// RBAC rejects the request unless the caller may perform action on
// resource. Core operations check again; this gate lets whole route groups
// fail before binding any input.
func RBAC(authorizer ports.Authorizer, resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authorizer.Authorize(Principal(c), resource, action); err != nil {
				return err
			}
			return next(c)
		}
	}
}
