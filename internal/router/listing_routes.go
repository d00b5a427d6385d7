package router

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
)

// registerListing mounts the /venues or /artists route set for t.
func registerListing(e *echo.Echo, d Deps, t model.UserType) {
	g := e.Group("/" + strings.ToLower(string(t)) + "s")
	r, w := d.reads(), d.writes()

	switch t {
	case model.TypeVenue:
		g.GET("", d.Pages.Venues, r...)
	case model.TypeArtist:
		g.GET("", d.Pages.Artists, r...)
	}
	g.GET("/search", d.Search.Names(t), r...)
	g.POST("/search", d.Search.Names(t))
	g.GET("/create", d.Users.NewForm(t))
	g.POST("/create", d.Users.Create(t), w...)
	g.GET("/:id", d.Pages.Detail(t), r...)
	g.GET("/:id/edit", d.Users.EditForm(t))
	g.POST("/:id/edit", d.Users.Update(t), w...)
	g.POST("/:id/delete", d.Users.Delete(t), w...)
}
