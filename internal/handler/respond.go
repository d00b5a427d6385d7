package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/service"
)

var errNotFound = echo.NewHTTPError(http.StatusNotFound)

// pathID parses :id. A malformed id is answered like a missing row.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}

// fail maps a service or form error onto a response. Causes of write
// failures are logged by the services; clients only see the message.
func fail(c echo.Context, log zerolog.Logger, err error) error {
	var (
		ve *form.ValidationError
		le *service.ListingError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, repository.ErrUserNotFound):
		return errNotFound
	case errors.As(err, &le):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": le.Error()})
	case errors.Is(err, service.ErrShowNotListed):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": service.ErrShowNotListed.Error()})
	}
	log.Error().Err(err).Str("route", c.Path()).Msg("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

// ErrorHandler renders the 404 and 500 pages as JSON.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		msg := http.StatusText(code)
		switch code {
		case http.StatusNotFound:
			msg = "not found"
		case http.StatusInternalServerError:
			msg = "internal server error"
			log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, map[string]string{"error": msg})
		}
		if werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}
