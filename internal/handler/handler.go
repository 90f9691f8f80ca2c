package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sibiraj15/url-shortener/internal/domain"
	"github.com/Sibiraj15/url-shortener/internal/service"
	"github.com/Sibiraj15/url-shortener/internal/validation"
)

var (
	errInvalidBody     = map[string]string{"error": "invalid request body"}
	errInvalidURL      = map[string]string{"error": "Invalid URL provided"}
	errURLTooLong      = map[string]string{"error": "url exceeds maximum length"}
	errUnsafeURL       = map[string]string{"error": "url protocol not allowed"}
	errPrivateIP       = map[string]string{"error": "private ip addresses not allowed"}
	errInvalidCode     = map[string]string{"error": "Custom code must be 6-8 alphanumeric characters"}
	errCodeExists      = map[string]string{"error": "Code already exists"}
	errCodeExhausted   = map[string]string{"error": "Failed to generate unique code"}
	errLinkNotFound    = map[string]string{"error": "Link not found"}
	errCreateFailed    = map[string]string{"error": "Failed to create link"}
	errFetchFailed     = map[string]string{"error": "Failed to fetch links"}
	errDeleteFailed    = map[string]string{"error": "Failed to delete link"}
	errRedirectFailed  = map[string]string{"error": "Redirect failed"}
	respDeleteSuccess  = map[string]bool{"success": true}
	respHealthOK       = map[string]string{"status": "ok", "database": "connected"}
	respHealthDegraded = map[string]string{"status": "degraded", "database": "disconnected"}
)

type Handler struct {
	linkService   LinkService
	linkValidator LinkValidator
	health        HealthChecker
	logger        *slog.Logger
}

func New(
	linkService LinkService,
	linkValidator LinkValidator,
	health HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		linkService:   linkService,
		linkValidator: linkValidator,
		health:        health,
		logger:        logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/links", h.ListLinks)
	e.POST("/links", h.CreateLink)
	e.GET("/links/:code", h.GetLink)
	e.DELETE("/links/:code", h.DeleteLink)
	// Registered last by convention; echo routes static paths above it first.
	e.GET("/:code", h.Redirect)
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.health.Ping(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusServiceUnavailable, respHealthDegraded)
	}
	return c.JSON(http.StatusOK, respHealthOK)
}

func (h *Handler) ListLinks(c echo.Context) error {
	links, err := h.linkService.ListLinks(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to fetch links", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errFetchFailed)
	}
	return c.JSON(http.StatusOK, links)
}

func (h *Handler) CreateLink(c echo.Context) error {
	var req domain.CreateLinkRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}

	if err := h.linkValidator.ValidateURL(req.TargetURL); err != nil {
		return h.handleValidationError(c, err)
	}

	if req.CustomCode != "" {
		if err := h.linkValidator.ValidateCode(req.CustomCode); err != nil {
			return c.JSON(http.StatusBadRequest, errInvalidCode)
		}
	}

	resp, err := h.linkService.CreateLink(c.Request().Context(), req.TargetURL, req.CustomCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeTaken):
			return c.JSON(http.StatusConflict, errCodeExists)
		case errors.Is(err, service.ErrCodeExhausted):
			h.logger.Error("code generation exhausted retry budget")
			return c.JSON(http.StatusInternalServerError, errCodeExhausted)
		default:
			h.logger.Error("failed to create link", slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, errCreateFailed)
		}
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetLink(c echo.Context) error {
	code := c.Param("code")

	link, err := h.linkService.GetLink(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, errLinkNotFound)
		}
		h.logger.Error("failed to fetch link", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errFetchFailed)
	}

	return c.JSON(http.StatusOK, link)
}

func (h *Handler) DeleteLink(c echo.Context) error {
	code := c.Param("code")

	if err := h.linkService.DeleteLink(c.Request().Context(), code); err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, errLinkNotFound)
		}
		h.logger.Error("failed to delete link", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errDeleteFailed)
	}

	return c.JSON(http.StatusOK, respDeleteSuccess)
}

func (h *Handler) Redirect(c echo.Context) error {
	code := c.Param("code")

	targetURL, err := h.linkService.Resolve(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, errLinkNotFound)
		}
		h.logger.Error("failed to redirect", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errRedirectFailed)
	}

	return c.Redirect(http.StatusFound, targetURL)
}

func (h *Handler) handleValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, validation.ErrEmptyURL),
		errors.Is(err, validation.ErrInvalidURLFormat):
		return c.JSON(http.StatusBadRequest, errInvalidURL)
	case errors.Is(err, validation.ErrUnsafeProtocol):
		return c.JSON(http.StatusBadRequest, errUnsafeURL)
	case errors.Is(err, validation.ErrURLTooLong):
		return c.JSON(http.StatusBadRequest, errURLTooLong)
	case errors.Is(err, validation.ErrPrivateIPNotAllowed):
		return c.JSON(http.StatusBadRequest, errPrivateIP)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "validation failed"})
	}
}
