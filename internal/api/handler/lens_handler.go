package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

// LensHandler serves the maintenance lens.
type LensHandler struct{}

func NewLensHandler() *LensHandler {
	return &LensHandler{}
}

// Get handles GET /v1/lens.
//
// @Summary      Lens state
// @Tags         lens
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.LensState
// @Failure      403  {object}  errorResponse
// @Router       /v1/lens [get]
func (h *LensHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	lens, err := sess.Lens()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lens.State())
}

// SetMode handles PUT /v1/lens/mode.
//
// @Summary      Switch between diagnosis and editing
// @Tags         lens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      lensModeRequest  true  "Mode"
// @Success      200   {object}  service.LensState
// @Failure      422   {object}  errorResponse
// @Router       /v1/lens/mode [put]
func (h *LensHandler) SetMode(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req lensModeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	lens, err := sess.Lens()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lens.SetMode(domain.LensMode(req.Mode)))
}

// UploadImage handles PUT /v1/lens/image.
//
// @Summary      Load an image
// @Tags         lens
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Photo of the issue"
// @Success      200    {object}  service.LensState
// @Failure      400    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/lens/image [put]
func (h *LensHandler) UploadImage(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	lens, err := sess.Lens()
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	state, err := lens.Load(data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// Process handles POST /v1/lens/process.
//
// @Summary      Run the loaded image through the current mode
// @Description  In ANALYZE mode a failed analysis is reported as a result, not an error.
// @Tags         lens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      lensProcessRequest  false  "Edit instruction"
// @Success      200   {object}  service.LensState
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/lens/process [post]
func (h *LensHandler) Process(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req lensProcessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	lens, err := sess.Lens()
	if err != nil {
		return err
	}
	state, err := lens.Process(c.Request().Context(), req.Instruction)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}
