package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

// UserHandler serves the venue and artist forms. Every method is bound
// to a listing type at registration.
type UserHandler struct {
	Users    UserWriter
	Listings Lister
	Log      zerolog.Logger
}

func basePath(t model.UserType) string {
	return "/" + strings.ToLower(string(t)) + "s"
}

// bindUserForm reads and validates the submitted form for type t.
func bindUserForm(c echo.Context, t model.UserType) (model.Profile, error) {
	var f form.UserForm
	if err := c.Bind(&f); err != nil {
		return model.Profile{}, &form.ValidationError{Fields: map[string]string{"form": "malformed submission"}}
	}
	f.Type = t
	if err := f.Validate(); err != nil {
		return model.Profile{}, err
	}
	return f.Profile()
}

// NewForm handles GET /venues/create and GET /artists/create.
func (h *UserHandler) NewForm(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"form":    form.UserForm{Type: t, Genres: []string{}},
			"choices": form.SearchChoices(),
		})
	}
}

// Create handles POST /venues/create and POST /artists/create.
func (h *UserHandler) Create(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := bindUserForm(c, t)
		if err != nil {
			return fail(c, h.Log, err)
		}
		id, err := h.Users.Create(c.Request().Context(), p)
		if err != nil {
			return fail(c, h.Log, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"id":       id,
			"message":  fmt.Sprintf("%s %s was successfully listed!", t, p.Name),
			"location": fmt.Sprintf("%s/%d", basePath(t), id),
		})
	}
}

// EditForm handles GET /venues/:id/edit and GET /artists/:id/edit.
func (h *UserHandler) EditForm(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		p, err := h.Listings.Profile(c.Request().Context(), t, id)
		if err != nil {
			return fail(c, h.Log, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":      id,
			"form":    form.FromProfile(p),
			"choices": form.SearchChoices(),
		})
	}
}

// Update handles POST /venues/:id/edit and POST /artists/:id/edit.
func (h *UserHandler) Update(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		p, err := bindUserForm(c, t)
		if err != nil {
			return fail(c, h.Log, err)
		}
		if err := h.Users.Update(c.Request().Context(), id, p); err != nil {
			return fail(c, h.Log, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":       id,
			"message":  fmt.Sprintf("%s %s was successfully updated!", t, p.Name),
			"location": fmt.Sprintf("%s/%d", basePath(t), id),
		})
	}
}

// Delete handles POST /venues/:id/delete and POST /artists/:id/delete.
func (h *UserHandler) Delete(t model.UserType) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := h.Users.Delete(c.Request().Context(), t, id); err != nil {
			return fail(c, h.Log, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":  fmt.Sprintf("%s was successfully deleted.", t),
			"location": "/",
		})
	}
}
