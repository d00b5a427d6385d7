package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/model"
)

// PageHandler serves the home page, the directories and detail pages.
type PageHandler struct {
	Listings Lister
	Log      zerolog.Logger
}

// Home handles GET /.
func (h *PageHandler) Home(c echo.Context) error {
	items, err := h.Listings.Home(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": items})
}

// Venues handles GET /venues.
func (h *PageHandler) Venues(c echo.Context) error {
	areas, err := h.Listings.Venues(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// Artists handles GET /artists.
func (h *PageHandler) Artists(c echo.Context) error {
	artists, err := h.Listings.Artists(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// Detail handles GET /venues/:id and GET /artists/:id.
func (h *PageHandler) Detail(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		d, err := h.Listings.Detail(c.Request().Context(), t, id)
		if err != nil {
			return fail(c, h.Log, err)
		}
		return c.JSON(http.StatusOK, d)
	}
}

// Shows handles GET /shows.
func (h *PageHandler) Shows(c echo.Context) error {
	shows, err := h.Listings.Shows(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}
