package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const headerIdempotencyKey = "Idempotency-Key"

// MaxIdempotencyKeyLen bounds the Idempotency-Key header.
const MaxIdempotencyKeyLen = 255

// IdempotencyKey rejects malformed Idempotency-Key headers before they reach
// a handler. A key must be 1-255 printable ASCII characters; requests without
// the header pass through.
func IdempotencyKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			values := c.Request().Header.Values(headerIdempotencyKey)
			if len(values) == 0 {
				return next(c)
			}
			if len(values) > 1 || !validKey(values[0]) {
				return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key must be 1-255 printable ASCII characters")
			}
			return next(c)
		}
	}
}

func validKey(k string) bool {
	if k == "" || len(k) > MaxIdempotencyKeyLen {
		return false
	}
	for i := 0; i < len(k); i++ {
		if k[i] < 0x21 || k[i] > 0x7e {
			return false
		}
	}
	return true
}
