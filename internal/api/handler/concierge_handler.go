package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ConciergeHandler serves the resident's AI concierge chat.
type ConciergeHandler struct{}

func NewConciergeHandler() *ConciergeHandler {
	return &ConciergeHandler{}
}

// List handles GET /v1/concierge/messages.
//
// @Summary      Conversation history
// @Tags         concierge
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ChatMessage
// @Failure      403  {object}  errorResponse
// @Router       /v1/concierge/messages [get]
func (h *ConciergeHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	concierge, err := sess.Concierge()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, concierge.Messages())
}

// Send handles POST /v1/concierge/messages.
//
// @Summary      Ask the concierge
// @Description  Returns the concierge's reply, or a fixed apology when the AI service is unreachable.
// @Tags         concierge
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.ChatMessage
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/concierge/messages [post]
func (h *ConciergeHandler) Send(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	concierge, err := sess.Concierge()
	if err != nil {
		return err
	}
	reply, err := concierge.Send(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reply)
}
