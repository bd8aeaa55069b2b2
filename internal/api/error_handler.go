package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/api/handler"
	"github.com/sweem/sweem-api/internal/core/domain"
)

// problemTypes links each status to its RFC 9110 definition.
var problemTypes = map[int]string{
	http.StatusBadRequest:           "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	http.StatusNotFound:             "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	http.StatusMethodNotAllowed:     "https://tools.ietf.org/html/rfc9110#section-15.5.6",
	http.StatusConflict:             "https://tools.ietf.org/html/rfc9110#section-15.5.10",
	http.StatusUnsupportedMediaType: "https://tools.ietf.org/html/rfc9110#section-15.5.16",
	http.StatusInternalServerError:  "https://tools.ietf.org/html/rfc9110#section-15.6.1",
	http.StatusServiceUnavailable:   "https://tools.ietf.org/html/rfc9110#section-15.6.4",
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders an RFC 7807 problem details body.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, detail := resolveError(err, log, c)
		problem := handler.ProblemDetails{
			Type:     problemType(code),
			Title:    http.StatusText(code),
			Status:   code,
			Detail:   detail,
			Instance: c.Request().URL.Path,
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		c.Response().Header().Set(echo.HeaderContentType, handler.MIMEApplicationProblemJSON)
		c.Response().WriteHeader(code)
		_ = c.Echo().JSONSerializer.Serialize(c, problem, "")
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnexpected(log, c, err)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to fixed status codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return http.StatusBadRequest, ve.Error()
		}
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrLoginTaken):
		return http.StatusConflict, "login is already taken"
	case errors.Is(err, domain.ErrUserManagesProjects):
		return http.StatusConflict, "user still manages projects"
	case errors.Is(err, domain.ErrRequestInProgress):
		return http.StatusConflict, "a request with this Idempotency-Key is still in progress"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	logUnexpected(log, c, err)
	return http.StatusInternalServerError, "internal server error"
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}

func problemType(code int) string {
	if t, ok := problemTypes[code]; ok {
		return t
	}
	return "about:blank"
}
