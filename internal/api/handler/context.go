package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/visitor-pass/internal/api/middleware"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// principal returns the caller injected by the Auth middleware. A missing
// role means the route was mounted without Auth; fail fast with 401 before
// any service call.
func principal(c echo.Context) (domain.Principal, error) {
	p := middleware.Principal(c)
	if !p.Authenticated() {
		return p, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// bindValid binds the request body into req and runs struct validation.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}
