package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/emarabot/plaza-os/internal/api/middleware"
	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/service"
)

// SessionRegistry creates and drops sessions.
type SessionRegistry interface {
	Create() (*service.Session, error)
	Remove(id string) error
}

// SessionHandler handles session lifecycle, login and navigation.
type SessionHandler struct {
	sessions  SessionRegistry
	jwtSecret string
	tokenTTL  time.Duration
}

func NewSessionHandler(sessions SessionRegistry, jwtSecret string, tokenTTL time.Duration) *SessionHandler {
	return &SessionHandler{sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Create handles POST /v1/sessions.
//
// @Summary      Open a session
// @Description  Creates an anonymous session that boots in the background.
// @Tags         session
// @Produce      json
// @Success      201  {object}  createSessionResponse
// @Failure      500  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	sess, err := h.sessions.Create()
	if err != nil {
		return err
	}
	token, err := middleware.IssueToken(h.jwtSecret, sess.ID, h.tokenTTL)
	if err != nil {
		_ = h.sessions.Remove(sess.ID)
		return err
	}
	return c.JSON(http.StatusCreated, createSessionResponse{
		Token:     token,
		SessionID: sess.ID,
		View:      sess.View(),
	})
}

// Get handles GET /v1/session.
//
// @Summary      Current identity and view
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot(sess))
}

// Delete handles DELETE /v1/session.
//
// @Summary      Close the session
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	sess.Logout()
	if err := h.sessions.Remove(sess.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Login handles POST /v1/session/login.
//
// @Summary      Log in
// @Description  Residents and the administrator use username and password; guests use an access code.
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	creds := domain.Credentials{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		// Access codes are entered case-insensitively.
		AccessCode: strings.ToUpper(strings.TrimSpace(req.AccessCode)),
	}
	if _, err := sess.Login(c.Request().Context(), domain.LoginKind(req.Kind), creds); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot(sess))
}

// Logout handles POST /v1/session/logout.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	sess.Logout()
	return c.JSON(http.StatusOK, snapshot(sess))
}

// SelectTab handles PUT /v1/session/tab.
//
// @Summary      Switch resident tab
// @Description  Has no effect unless the session is a resident.
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectTabRequest  true  "Tab"
// @Success      200   {object}  selectTabResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/tab [put]
func (h *SessionHandler) SelectTab(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req selectTabRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, applied := sess.SelectTab(domain.Tab(req.Tab))
	return c.JSON(http.StatusOK, selectTabResponse{View: view, Applied: applied})
}

func snapshot(sess *service.Session) sessionResponse {
	return sessionResponse{
		SessionID: sess.ID,
		Identity:  sess.Identity(),
		View:      sess.View(),
	}
}
