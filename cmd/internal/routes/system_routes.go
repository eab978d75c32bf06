package routes

import (
	"agenda/cmd/internal/utils/apierror"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type Pinger func() error

type DefaultSystemRoute struct {
	Ping Pinger
}

func NewSystemDefault(ping Pinger) *DefaultSystemRoute {
	return &DefaultSystemRoute{Ping: ping}
}

func (s *DefaultSystemRoute) Health(c echo.Context) error {
	if err := s.Ping(); err != nil {
		log.Errorf("health check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// ErrorHandler renders errors raised by echo itself (unknown routes, rate
// limiting, panics caught by Recover) with the same {"message"} shape the
// services use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apierr apierror.ErrorResponse
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		switch he.Code {
		case http.StatusNotFound:
			apierr = apierror.NotFoundError
		case http.StatusTooManyRequests:
			apierr = apierror.TooManyRequestsError
		case http.StatusInternalServerError:
			apierr = apierror.InternalServerError
		default:
			apierr = apierror.NewSimple(he.Code, http.StatusText(he.Code))
		}
	default:
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
		apierr = apierror.InternalServerError
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(apierr.Code())
	} else {
		werr = c.JSON(apierr.Code(), apierr)
	}
	if werr != nil {
		log.Errorf("failed to write error response: %v", werr)
	}
}
