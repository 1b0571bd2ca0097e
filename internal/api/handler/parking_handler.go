package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ParkingHandler struct{}

func NewParkingHandler() *ParkingHandler {
	return &ParkingHandler{}
}

// Get handles GET /v1/parking.
//
// @Summary      Parking map
// @Description  Guests get their assigned spot and directions.
// @Tags         parking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.ParkingView
// @Failure      403  {object}  errorResponse
// @Router       /v1/parking [get]
func (h *ParkingHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	view, err := sess.Parking()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
