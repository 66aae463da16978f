package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"Denominator/internal/domain/models"
	"Denominator/internal/usecase"
	xhttp "Denominator/pkg/http"
	"Denominator/pkg/http/middleware"
	xlogger "Denominator/pkg/logger"
)

// DashboardEchoHandler serves the liquidity series over HTTP.
type DashboardEchoHandler struct {
	logger      *xlogger.Logger
	dash        *usecase.Dashboard
	exportLimit middleware.Allower
}

type HandlerOption func(*DashboardEchoHandler)

// WithExportLimiter throttles POST /api/export per client.
func WithExportLimiter(a middleware.Allower) HandlerOption {
	return func(h *DashboardEchoHandler) { h.exportLimit = a }
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dash *usecase.Dashboard, opts ...HandlerOption) *DashboardEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	h := &DashboardEchoHandler{logger: logger, dash: dash}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/series", h.Series)
	g.GET("/series/latest", h.Latest)
	g.GET("/metrics", h.Metrics)
	g.GET("/anchors", h.Anchors)
	var exportMW []echo.MiddlewareFunc
	if h.exportLimit != nil {
		exportMW = append(exportMW, middleware.RateLimit(h.exportLimit))
	}
	g.POST("/export", h.Export, exportMW...)

	e.GET("/healthz", h.Health)
}

func (h *DashboardEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	page, err := h.dash.Series(req.Range)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")
	return xhttp.SuccessResponse(c, page)
}

func (h *DashboardEchoHandler) Latest(c echo.Context) error {
	row, err := h.dash.Latest()
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, row)
}

func (h *DashboardEchoHandler) Metrics(c echo.Context) error {
	res, err := h.dash.Metrics(c.Request().Context())
	if err != nil {
		h.logger.Error("metrics usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Anchors(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.dash.Anchors())
}

func (h *DashboardEchoHandler) Export(c echo.Context) error {
	report, err := h.dash.Export(c.Request().Context())
	if errors.Is(err, usecase.ErrNoSinks) {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("no export sink configured").WithError(err))
	}
	if err != nil {
		h.logger.Error("export usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("export failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	report := h.dash.Health(c.Request().Context())
	if report.Status != "ok" {
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, report)
	}
	return xhttp.SuccessResponse(c, report)
}
