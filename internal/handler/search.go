package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

// SearchHandler serves the name, show and advanced searches.
type SearchHandler struct {
	Search Searcher
	Log    zerolog.Logger
}

func bindTerm(c echo.Context) (string, error) {
	var f form.TermForm
	if err := c.Bind(&f); err != nil {
		return "", &form.ValidationError{Fields: map[string]string{"search_term": "malformed submission"}}
	}
	return strings.TrimSpace(f.Term), nil
}

// Names handles GET/POST /venues/search and /artists/search.
func (h *SearchHandler) Names(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		term, err := bindTerm(c)
		if err != nil {
			return fail(c, h.Log, err)
		}
		res, err := h.Search.Names(c.Request().Context(), t, term)
		if err != nil {
			return fail(c, h.Log, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

// Shows handles POST /shows/search.
func (h *SearchHandler) Shows(c echo.Context) error {
	term, err := bindTerm(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	res, err := h.Search.ShowsByTerm(c.Request().Context(), term)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Choices handles GET /advance_user_search and GET /search_shows_advance.
func (h *SearchHandler) Choices(c echo.Context) error {
	choices, err := h.Search.Choices(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, choices)
}

// AdvancedUsers handles POST /advance_user_search.
func (h *SearchHandler) AdvancedUsers(c echo.Context) error {
	var f form.UserSearchForm
	if err := c.Bind(&f); err != nil {
		return fail(c, h.Log, &form.ValidationError{Fields: map[string]string{"form": "malformed submission"}})
	}
	crit, err := f.Criteria()
	if err != nil {
		return fail(c, h.Log, err)
	}
	res, err := h.Search.Users(c.Request().Context(), crit)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// AdvancedShows handles POST /search_shows_advance.
func (h *SearchHandler) AdvancedShows(c echo.Context) error {
	var f form.ShowSearchForm
	if err := c.Bind(&f); err != nil {
		return fail(c, h.Log, &form.ValidationError{Fields: map[string]string{"form": "malformed submission"}})
	}
	crit, err := f.Criteria()
	if err != nil {
		return fail(c, h.Log, err)
	}
	res, err := h.Search.Shows(c.Request().Context(), crit)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, res)
}
