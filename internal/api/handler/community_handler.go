package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CommunityHandler serves the resident bulletin board.
type CommunityHandler struct{}

func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{}
}

// List handles GET /v1/community/posts.
//
// @Summary      Board posts, newest first
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CommunityPost
// @Router       /v1/community/posts [get]
func (h *CommunityHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	board, err := sess.Board()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board.Posts())
}

// Draft handles POST /v1/community/drafts.
//
// @Summary      Draft a listing description
// @Description  The draft becomes the content of the next published listing.
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      draftRequest  true  "Item"
// @Success      200   {object}  draftResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/community/drafts [post]
func (h *CommunityHandler) Draft(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req draftRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	board, err := sess.Board()
	if err != nil {
		return err
	}
	draft, err := board.Draft(c.Request().Context(), req.Item, req.Details)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draftResponse{Draft: draft})
}

// Publish handles POST /v1/community/posts.
//
// @Summary      Publish a listing
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      publishRequest  true  "Listing"
// @Success      201   {object}  domain.CommunityPost
// @Failure      422   {object}  errorResponse
// @Router       /v1/community/posts [post]
func (h *CommunityHandler) Publish(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req publishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	board, err := sess.Board()
	if err != nil {
		return err
	}
	post, err := board.Publish(req.Item, req.Price, req.Details)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Like handles POST /v1/community/posts/:id/like.
//
// @Summary      Like a post
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.CommunityPost
// @Failure      404  {object}  errorResponse
// @Router       /v1/community/posts/{id}/like [post]
func (h *CommunityHandler) Like(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	board, err := sess.Board()
	if err != nil {
		return err
	}
	post, err := board.Like(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
