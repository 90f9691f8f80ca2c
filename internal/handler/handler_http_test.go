package handler_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sibiraj15/url-shortener/internal/domain"
	"github.com/Sibiraj15/url-shortener/internal/handler"
	"github.com/Sibiraj15/url-shortener/internal/handler/mocks"
	"github.com/Sibiraj15/url-shortener/internal/service"
	"github.com/Sibiraj15/url-shortener/internal/validation"
)

func newTestHandler(t *testing.T) (*handler.Handler, *mocks.MockLinkService, *mocks.MockLinkValidator, *mocks.MockHealthChecker) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := mocks.NewMockLinkService(t)
	val := mocks.NewMockLinkValidator(t)
	health := mocks.NewMockHealthChecker(t)
	h := handler.New(svc, val, health, logger)
	return h, svc, val, health
}

func newEcho(t *testing.T) (*echo.Echo, *mocks.MockLinkService, *mocks.MockLinkValidator, *mocks.MockHealthChecker) {
	h, svc, val, health := newTestHandler(t)
	e := echo.New()
	h.Register(e)
	return e, svc, val, health
}

// CreateLink

func TestCreateLink_Success(t *testing.T) {
	e, svc, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("https://example.com/page").Return(nil)
	svc.EXPECT().CreateLink(mock.Anything, "https://example.com/page", "").Return(&domain.CreateLinkResponse{
		Code:      "xyz789",
		TargetURL: "https://example.com/page",
		ShortURL:  "http://short.url/xyz789",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"targetUrl":"https://example.com/page"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.CreateLinkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "xyz789", resp.Code)
	assert.Equal(t, "https://example.com/page", resp.TargetURL)
	assert.True(t, strings.HasSuffix(resp.ShortURL, "/xyz789"))
}

func TestCreateLink_CustomCode_Success(t *testing.T) {
	e, svc, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	val.EXPECT().ValidateCode("mycode1").Return(nil)
	svc.EXPECT().CreateLink(mock.Anything, "https://example.com", "mycode1").Return(&domain.CreateLinkResponse{
		Code:      "mycode1",
		TargetURL: "https://example.com",
		ShortURL:  "http://short.url/mycode1",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/links",
		strings.NewReader(`{"targetUrl":"https://example.com","customCode":"mycode1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "mycode1")
}

func TestCreateLink_InvalidJSON(t *testing.T) {
	e, _, _, _ := newEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`invalid json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLink_InvalidURL(t *testing.T) {
	e, _, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("not-a-url").Return(validation.ErrInvalidURLFormat)

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"targetUrl":"not-a-url"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid URL provided")
}

func TestCreateLink_NonHTTPScheme(t *testing.T) {
	e, _, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("ftp://x.com").Return(validation.ErrInvalidURLFormat)

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"targetUrl":"ftp://x.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLink_InvalidCustomCode(t *testing.T) {
	e, _, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	val.EXPECT().ValidateCode("ab*def").Return(validation.ErrInvalidCodeFormat)

	req := httptest.NewRequest(http.MethodPost, "/links",
		strings.NewReader(`{"targetUrl":"https://example.com","customCode":"ab*def"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "6-8 alphanumeric")
}

func TestCreateLink_CodeConflict(t *testing.T) {
	e, svc, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	val.EXPECT().ValidateCode("mycode1").Return(nil)
	svc.EXPECT().CreateLink(mock.Anything, "https://example.com", "mycode1").
		Return(nil, service.ErrCodeTaken)

	req := httptest.NewRequest(http.MethodPost, "/links",
		strings.NewReader(`{"targetUrl":"https://example.com","customCode":"mycode1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Code already exists")
}

func TestCreateLink_RetryExhaustion(t *testing.T) {
	e, svc, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	svc.EXPECT().CreateLink(mock.Anything, "https://example.com", "").
		Return(nil, service.ErrCodeExhausted)

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"targetUrl":"https://example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate unique code")
}

func TestCreateLink_ServiceError(t *testing.T) {
	e, svc, val, _ := newEcho(t)

	val.EXPECT().ValidateURL("https://example.com").Return(nil)
	svc.EXPECT().CreateLink(mock.Anything, "https://example.com", "").
		Return(nil, errors.New("db error"))

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"targetUrl":"https://example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ListLinks

func TestListLinks_Success(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	now := time.Now().UTC()
	svc.EXPECT().ListLinks(mock.Anything).Return([]domain.Link{
		{Code: "newer1", TargetURL: "https://example.com/2", CreatedAt: now},
		{Code: "older1", TargetURL: "https://example.com/1", CreatedAt: now.Add(-time.Hour)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/links", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var links []domain.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
	require.Len(t, links, 2)
	assert.Equal(t, "newer1", links[0].Code)
	assert.Equal(t, "older1", links[1].Code)
}

func TestListLinks_StoreError(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().ListLinks(mock.Anything).Return(nil, errors.New("db error"))

	req := httptest.NewRequest(http.MethodGet, "/links", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch links")
}

// GetLink

func TestGetLink_Success(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	clicked := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.EXPECT().GetLink(mock.Anything, "abc123").Return(&domain.Link{
		Code:        "abc123",
		TargetURL:   "https://example.com",
		Clicks:      3,
		LastClicked: &clicked,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/links/abc123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var link domain.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	assert.Equal(t, "abc123", link.Code)
	assert.Equal(t, int64(3), link.Clicks)
	require.NotNil(t, link.LastClicked)
	assert.Equal(t, clicked, link.LastClicked.UTC())
}

func TestGetLink_LastClickedNullBeforeFirstRedirect(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().GetLink(mock.Anything, "abc123").Return(&domain.Link{
		Code:      "abc123",
		TargetURL: "https://example.com",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/links/abc123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lastClicked":null`)
}

func TestGetLink_NotFound(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().GetLink(mock.Anything, "zzzzzz").Return(nil, service.ErrLinkNotFound)

	req := httptest.NewRequest(http.MethodGet, "/links/zzzzzz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Link not found")
}

// DeleteLink

func TestDeleteLink_Success(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().DeleteLink(mock.Anything, "abc123").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/links/abc123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestDeleteLink_NotFound(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().DeleteLink(mock.Anything, "zzzzzz").Return(service.ErrLinkNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/links/zzzzzz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Redirect

func TestRedirect_Success(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().Resolve(mock.Anything, "abc123").Return("https://example.com/page", nil)

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/page", rec.Header().Get(echo.HeaderLocation))
}

func TestRedirect_NotFound(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().Resolve(mock.Anything, "zzzzzz").Return("", service.ErrLinkNotFound)

	req := httptest.NewRequest(http.MethodGet, "/zzzzzz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Link not found")
}

func TestRedirect_StoreError(t *testing.T) {
	e, svc, _, _ := newEcho(t)

	svc.EXPECT().Resolve(mock.Anything, "abc123").Return("", errors.New("db error"))

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Redirect failed")
}

// Health

func TestHealth_OK(t *testing.T) {
	e, _, _, health := newEcho(t)

	health.EXPECT().Ping(mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "connected")
}

func TestHealth_DatabaseDown(t *testing.T) {
	e, _, _, health := newEcho(t)

	health.EXPECT().Ping(mock.Anything).Return(errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
