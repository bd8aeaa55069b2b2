package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestIdempotencyKey_PassesWithoutHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := IdempotencyKey()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestIdempotencyKey_AcceptsValidKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/clients", nil)
	req.Header.Set("Idempotency-Key", "7f3c1a2e-retry-1")
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := IdempotencyKey()(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil || !called {
		t.Fatalf("expected pass-through, got called=%v err=%v", called, err)
	}
}

func TestIdempotencyKey_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"too long", []string{strings.Repeat("k", MaxIdempotencyKeyLen+1)}},
		{"whitespace", []string{"has space"}},
		{"non ascii", []string{"clé"}},
		{"repeated header", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/clients", nil)
			for _, v := range tt.values {
				req.Header.Add("Idempotency-Key", v)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := IdempotencyKey()(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}
