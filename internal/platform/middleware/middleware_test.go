package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestEcho(buf *bytes.Buffer) *echo.Echo {
	logger := zerolog.New(buf)
	e := echo.New()
	e.Use(Recovery(logger))
	e.Use(RequestID())
	e.Use(Logger(logger))
	return e
}

func TestLogger_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf)
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("expected request id echoed back, got %q", got)
	}
	line := buf.String()
	if !strings.Contains(line, `"request_id":"req-123"`) {
		t.Errorf("log line missing request id: %s", line)
	}
	if !strings.Contains(line, `"status":200`) {
		t.Errorf("log line missing status: %s", line)
	}
}

func TestLogger_GeneratesRequestIDWhenAbsent(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf)
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id header")
	}
	if strings.Contains(buf.String(), `"request_id":""`) {
		t.Errorf("log line has empty request id: %s", buf.String())
	}
}

func TestLogger_HandlerErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf)
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"status":404`) {
		t.Errorf("log line should carry the resolved status: %s", buf.String())
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf)
	e.GET("/boom", func(c echo.Context) error {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-9")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, "panic recovered") || !strings.Contains(line, "kaboom") {
		t.Errorf("panic not logged: %s", line)
	}
	if !strings.Contains(line, `"request_id":"req-9"`) {
		t.Errorf("panic log missing request id: %s", line)
	}
}
