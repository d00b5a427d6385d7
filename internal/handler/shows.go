package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/form"
)

// ShowHandler serves the show form.
type ShowHandler struct {
	Shows ShowWriter
	Log   zerolog.Logger
}

// NewForm handles GET /shows/create.
func (h *ShowHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.ShowForm{}})
}

// Create handles POST /shows/create.
func (h *ShowHandler) Create(c echo.Context) error {
	var f form.ShowForm
	if err := c.Bind(&f); err != nil {
		return fail(c, h.Log, &form.ValidationError{Fields: map[string]string{"form": "malformed submission"}})
	}
	if err := f.Validate(); err != nil {
		return fail(c, h.Log, err)
	}
	s, err := f.Show()
	if err != nil {
		return fail(c, h.Log, err)
	}
	id, err := h.Shows.Create(c.Request().Context(), s)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       id,
		"message":  "Show was successfully listed!",
		"location": "/",
	})
}
