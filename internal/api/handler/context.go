package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emarabot/plaza-os/internal/api/middleware"
	"github.com/emarabot/plaza-os/internal/core/service"
)

// currentSession returns the session injected by the Session middleware.
// Its absence means the route was registered without it.
func currentSession(c echo.Context) (*service.Session, error) {
	sess, err := middleware.SessionFrom(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// bindAndValidate decodes the request body into req and runs its validate
// tags. Decoding failures are 400s, rule violations 422s.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
