package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the manager dashboard.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Overview handles GET /v1/dashboard.
//
// @Summary      Mood, tickets and the last polished announcement
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.DashboardOverview
// @Failure      403  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	dashboard, err := sess.Dashboard()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard.Overview())
}

// Polish handles POST /v1/dashboard/polish.
//
// @Summary      Rewrite a rough note as a resident announcement
// @Description  The note comes back unchanged when the AI service is unreachable.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      polishRequest  true  "Rough note"
// @Success      200   {object}  polishResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/dashboard/polish [post]
func (h *DashboardHandler) Polish(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req polishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	dashboard, err := sess.Dashboard()
	if err != nil {
		return err
	}
	out, err := dashboard.Polish(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, polishResponse{Input: req.Text, Output: out})
}
