package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Sibiraj15/url-shortener/internal/metrics"
	"github.com/Sibiraj15/url-shortener/internal/middleware"
	"github.com/Sibiraj15/url-shortener/internal/middleware/mocks"
)

func recordOne(t *testing.T) (*mocks.MockHTTPRecorder, *metrics.HTTPMetric) {
	rec := mocks.NewMockHTTPRecorder(t)

	var captured metrics.HTTPMetric
	rec.EXPECT().RecordHTTP(mock.Anything).
		Run(func(m metrics.HTTPMetric) {
			captured = m
		}).Return().Once()

	return rec, &captured
}

func TestMetrics_SuccessfulRequest(t *testing.T) {
	rec, captured := recordOne(t)

	e := echo.New()
	e.Use(middleware.Metrics(rec))
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/test", captured.Path)
	assert.Equal(t, http.StatusOK, captured.StatusCode)
	assert.GreaterOrEqual(t, captured.DurationMs, 0.0)
	assert.Equal(t, "192.168.1.1", captured.ClientIP)
	assert.Empty(t, captured.Error)
}

func TestMetrics_RequestWithError(t *testing.T) {
	rec, captured := recordOne(t)

	e := echo.New()
	e.Use(middleware.Metrics(rec))
	e.GET("/error", func(c echo.Context) error {
		return errors.New("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)

	assert.Equal(t, "something went wrong", captured.Error)
}

func TestMetrics_HTTPError(t *testing.T) {
	rec, captured := recordOne(t)

	e := echo.New()
	e.Use(middleware.Metrics(rec))
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, captured.StatusCode)
}

func TestMetrics_PathParameter(t *testing.T) {
	rec, captured := recordOne(t)

	e := echo.New()
	e.Use(middleware.Metrics(rec))
	e.GET("/:code", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)

	// The route template, not the raw code, keeps metric cardinality bounded.
	assert.Equal(t, "/:code", captured.Path)
}
