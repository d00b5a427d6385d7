// Package router registers every route and the middleware chain on an
// Echo instance.
package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
)

// Deps are the handlers and the per-route middleware. Cache wraps the
// read pages; RateLimit and Purge wrap every write.
type Deps struct {
	Pages  *handler.PageHandler
	Users  *handler.UserHandler
	Shows  *handler.ShowHandler
	Search *handler.SearchHandler
	DB     handler.Pinger

	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
	Purge     echo.MiddlewareFunc
}

func (d Deps) reads() []echo.MiddlewareFunc {
	if d.Cache == nil {
		return nil
	}
	return []echo.MiddlewareFunc{d.Cache}
}

func (d Deps) writes() []echo.MiddlewareFunc {
	var m []echo.MiddlewareFunc
	if d.RateLimit != nil {
		m = append(m, d.RateLimit)
	}
	if d.Purge != nil {
		m = append(m, d.Purge)
	}
	return m
}

// New returns an Echo instance with request ids, panic recovery, request
// logging, metrics and the JSON error pages installed.
func New(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(echomw.Recover())
	return e
}

// RegisterRoutes registers the health and metrics endpoints, the home
// page and every listing, show and search route.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.DB))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/", d.Pages.Home, d.reads()...)

	registerListing(e, d, model.TypeVenue)
	registerListing(e, d, model.TypeArtist)
	registerShows(e, d)
	registerSearch(e, d)
}
