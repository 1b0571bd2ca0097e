package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ServicesHandler serves the resident services hub.
type ServicesHandler struct{}

func NewServicesHandler() *ServicesHandler {
	return &ServicesHandler{}
}

// Catalogue handles GET /v1/services.
//
// @Summary      Service catalogue
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ServiceCard
// @Failure      403  {object}  errorResponse
// @Router       /v1/services [get]
func (h *ServicesHandler) Catalogue(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	hub, err := sess.Services()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hub.Catalogue())
}

// IssueGuestKey handles POST /v1/guest-keys.
//
// @Summary      Issue a visitor pass
// @Description  The new key is accepted by guest logins immediately.
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  guestKeyResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/guest-keys [post]
func (h *ServicesHandler) IssueGuestKey(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	hub, err := sess.Services()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, guestKeyResponse{Key: hub.IssueVisitorPass()})
}
