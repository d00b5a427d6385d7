package router

import "github.com/labstack/echo/v4"

func registerShows(e *echo.Echo, d Deps) {
	e.GET("/shows", d.Pages.Shows, d.reads()...)
	e.GET("/shows/create", d.Shows.NewForm)
	e.POST("/shows/create", d.Shows.Create, d.writes()...)
	e.POST("/shows/search", d.Search.Shows)
}

// registerSearch mounts the advanced searches. GET returns the choices
// of the form.
func registerSearch(e *echo.Echo, d Deps) {
	e.GET("/advance_user_search", d.Search.Choices)
	e.POST("/advance_user_search", d.Search.AdvancedUsers)
	e.GET("/search_shows_advance", d.Search.Choices)
	e.POST("/search_shows_advance", d.Search.AdvancedShows)
}
